package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/workspace-tasks/internal/constants"
	"github.com/yukikurage/workspace-tasks/internal/models"
	"github.com/yukikurage/workspace-tasks/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrWorkspaceNotFound      = errors.New("workspace not found")
	ErrInvalidWorkspaceName   = errors.New("workspace name cannot be empty")
	ErrWorkspaceNameTooLong   = errors.New("workspace name is too long")
	ErrMemberUsernameRequired = errors.New("username is required")
)

// WorkspaceService provides business logic for workspace operations.
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MembershipRepository
	userRepo      repository.UserRepository
	membership    *MembershipService
}

// NewWorkspaceService creates a new WorkspaceService.
func NewWorkspaceService(
	workspaceRepo repository.WorkspaceRepository,
	memberRepo repository.MembershipRepository,
	userRepo repository.UserRepository,
	membership *MembershipService,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
		membership:    membership,
	}
}

// CreateWorkspaceInput represents parameters to create a new workspace.
type CreateWorkspaceInput struct {
	Name    string
	OwnerID uint64
}

// Create creates a workspace and makes the owner its admin.
func (s *WorkspaceService) Create(input CreateWorkspaceInput) (*models.Workspace, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidWorkspaceName
	}
	if len(name) > constants.MaxWorkspaceNameLength {
		return nil, ErrWorkspaceNameTooLong
	}

	ws := &models.Workspace{
		Name:      name,
		CreatedBy: input.OwnerID,
	}
	admin := &models.WorkspaceMember{
		UserID: input.OwnerID,
		Role:   models.RoleAdmin,
	}

	if err := s.workspaceRepo.CreateWithAdmin(ws, admin); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	return ws, nil
}

// ListForUser returns the user's memberships with their workspaces loaded.
func (s *WorkspaceService) ListForUser(userID uint64) ([]models.WorkspaceMember, error) {
	memberships, err := s.workspaceRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	return memberships, nil
}

// WorkspaceDetail is a workspace as seen by one of its members.
type WorkspaceDetail struct {
	Workspace *models.Workspace
	Members   []models.WorkspaceMember
	Role      models.Role
}

// Get returns the workspace, its members and the actor's role.
func (s *WorkspaceService) Get(workspaceID, actorID uint64) (*WorkspaceDetail, error) {
	ws, err := s.findWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	member, err := s.membership.RequireMember(actorID, workspaceID)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListMembers(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workspace members: %w", err)
	}

	return &WorkspaceDetail{
		Workspace: ws,
		Members:   members,
		Role:      member.Role,
	}, nil
}

// AddMemberInput represents an admin adding a user to a workspace by name.
type AddMemberInput struct {
	WorkspaceID uint64
	ActorID     uint64
	Username    string
}

// AddMember adds the named user as a member. Adding an existing member is a
// successful no-op: the existing membership is returned with added=false.
func (s *WorkspaceService) AddMember(input AddMemberInput) (*models.WorkspaceMember, bool, error) {
	if _, err := s.membership.RequireAdmin(input.ActorID, input.WorkspaceID); err != nil {
		return nil, false, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, false, ErrMemberUsernameRequired
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrUserNotFound
		}
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	member := &models.WorkspaceMember{
		UserID:      user.ID,
		WorkspaceID: input.WorkspaceID,
		Role:        models.RoleMember,
	}

	added, err := s.memberRepo.AddMember(member)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add member to workspace: %w", err)
	}

	if !added {
		existing, err := s.memberRepo.FindMember(input.WorkspaceID, user.ID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load existing membership: %w", err)
		}
		member = existing
	}
	member.User = *user

	return member, added, nil
}

// Delete removes the workspace with all of its tasks and memberships.
func (s *WorkspaceService) Delete(workspaceID, actorID uint64) error {
	if _, err := s.findWorkspace(workspaceID); err != nil {
		return err
	}

	if _, err := s.membership.RequireAdmin(actorID, workspaceID); err != nil {
		return err
	}

	if err := s.workspaceRepo.Delete(workspaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkspaceNotFound
		}
		return fmt.Errorf("failed to delete workspace: %w", err)
	}

	return nil
}

func (s *WorkspaceService) findWorkspace(workspaceID uint64) (*models.Workspace, error) {
	ws, err := s.workspaceRepo.FindByID(workspaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to find workspace: %w", err)
	}
	return ws, nil
}
