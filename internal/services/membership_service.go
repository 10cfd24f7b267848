package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/workspace-tasks/internal/models"
	"github.com/yukikurage/workspace-tasks/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotWorkspaceMember = errors.New("user is not a member of the workspace")
	ErrNotWorkspaceAdmin  = errors.New("only workspace admins can perform this action")
)

// MembershipService answers "is this user in that workspace, and as what".
// Every check reads the store; nothing is cached between calls.
type MembershipService struct {
	memberRepo repository.MembershipRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(memberRepo repository.MembershipRepository) *MembershipService {
	return &MembershipService{
		memberRepo: memberRepo,
	}
}

// GetMembership returns the user's membership in the workspace, or
// ErrNotWorkspaceMember when there is none.
func (s *MembershipService) GetMembership(userID, workspaceID uint64) (*models.WorkspaceMember, error) {
	member, err := s.memberRepo.FindMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotWorkspaceMember
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return member, nil
}

// IsAdmin reports whether the user holds the admin role in the workspace.
// Non-members are simply not admins.
func (s *MembershipService) IsAdmin(userID, workspaceID uint64) (bool, error) {
	member, err := s.GetMembership(userID, workspaceID)
	if err != nil {
		if errors.Is(err, ErrNotWorkspaceMember) {
			return false, nil
		}
		return false, err
	}
	return member.Role.IsAdmin(), nil
}

// RequireMember is GetMembership under a name that reads well at call sites.
func (s *MembershipService) RequireMember(userID, workspaceID uint64) (*models.WorkspaceMember, error) {
	return s.GetMembership(userID, workspaceID)
}

// RequireAdmin returns the membership if it carries the admin role.
// Members and non-members alike get ErrNotWorkspaceAdmin.
func (s *MembershipService) RequireAdmin(userID, workspaceID uint64) (*models.WorkspaceMember, error) {
	member, err := s.GetMembership(userID, workspaceID)
	if err != nil {
		if errors.Is(err, ErrNotWorkspaceMember) {
			return nil, ErrNotWorkspaceAdmin
		}
		return nil, err
	}
	if !member.Role.IsAdmin() {
		return nil, ErrNotWorkspaceAdmin
	}
	return member, nil
}
