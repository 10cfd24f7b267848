package repository

import (
	"github.com/yukikurage/workspace-tasks/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// WorkspaceRepository defines the interface for workspace data access
type WorkspaceRepository interface {
	// CreateWithAdmin creates a workspace and its admin membership atomically
	CreateWithAdmin(ws *models.Workspace, admin *models.WorkspaceMember) error

	// FindByID finds a workspace by ID
	FindByID(id uint64) (*models.Workspace, error)

	// ListMembershipsByUserID lists the user's memberships with their workspaces
	ListMembershipsByUserID(userID uint64) ([]models.WorkspaceMember, error)

	// Delete deletes a workspace together with its tasks and memberships
	Delete(id uint64) error
}

// MembershipRepository defines the interface for workspace membership data access
type MembershipRepository interface {
	// FindMember finds the membership of a user in a workspace
	FindMember(workspaceID, userID uint64) (*models.WorkspaceMember, error)

	// AddMember inserts a membership unless the (user, workspace) pair exists.
	// It reports whether a row was inserted.
	AddMember(member *models.WorkspaceMember) (bool, error)

	// ListMembers lists all members of a workspace with their users
	ListMembers(workspaceID uint64) ([]models.WorkspaceMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByWorkspace lists the workspace's tasks with their assignees
	ListByWorkspace(workspaceID uint64) ([]models.Task, error)

	// ListAssignedTo lists tasks assigned to a user, newest first
	ListAssignedTo(userID uint64) ([]models.Task, error)

	// ListCreatedBy lists tasks created by a user, newest first
	ListCreatedBy(userID uint64) ([]models.Task, error)

	// UpdateStatus sets the status of a task
	UpdateStatus(id uint64, status models.TaskStatus) error

	// UpdateContent sets the title and description of a task
	UpdateContent(id uint64, title, description string) error

	// Delete deletes a task
	Delete(id uint64) error
}
