package dto

import (
	"time"

	"github.com/yukikurage/workspace-tasks/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// WorkspaceDTO represents a workspace in API responses
type WorkspaceDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uint64    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkspaceWithRoleDTO represents a workspace with the caller's role
type WorkspaceWithRoleDTO struct {
	WorkspaceDTO
	Role models.Role `json:"role"`
}

// WorkspaceMemberDTO represents a member in a workspace
type WorkspaceMemberDTO struct {
	User UserDTO     `json:"user"`
	Role models.Role `json:"role"`
}

// WorkspaceDetailDTO is the workspace dashboard
type WorkspaceDetailDTO struct {
	WorkspaceDTO
	Members  []WorkspaceMemberDTO `json:"members"`
	YourRole models.Role          `json:"your_role"`
}

// AddMemberResponse reports whether the membership was newly created
type AddMemberResponse struct {
	Member WorkspaceMemberDTO `json:"member"`
	Added  bool               `json:"added"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	CreatedBy   uint64            `json:"created_by"`
	AssignedTo  *uint64           `json:"assigned_to"`
	WorkspaceID uint64            `json:"workspace_id"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Assignee    *UserDTO          `json:"assignee,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
	}
}

// ToWorkspaceDTO converts a Workspace model to WorkspaceDTO
func ToWorkspaceDTO(ws models.Workspace) WorkspaceDTO {
	return WorkspaceDTO{
		ID:        ws.ID,
		Name:      ws.Name,
		CreatedBy: ws.CreatedBy,
		CreatedAt: ws.CreatedAt,
	}
}

// ToWorkspaceWithRoleDTO converts a membership with its workspace loaded
func ToWorkspaceWithRoleDTO(member models.WorkspaceMember) WorkspaceWithRoleDTO {
	return WorkspaceWithRoleDTO{
		WorkspaceDTO: ToWorkspaceDTO(member.Workspace),
		Role:         member.Role,
	}
}

// ToWorkspaceWithRoleDTOs converts a list of memberships
func ToWorkspaceWithRoleDTOs(members []models.WorkspaceMember) []WorkspaceWithRoleDTO {
	dtos := make([]WorkspaceWithRoleDTO, len(members))
	for i, member := range members {
		dtos[i] = ToWorkspaceWithRoleDTO(member)
	}
	return dtos
}

// ToWorkspaceMemberDTO converts a membership with its user loaded
func ToWorkspaceMemberDTO(member models.WorkspaceMember) WorkspaceMemberDTO {
	return WorkspaceMemberDTO{
		User: ToUserDTO(member.User),
		Role: member.Role,
	}
}

// ToWorkspaceDetailDTO converts a workspace with members to the dashboard DTO
func ToWorkspaceDetailDTO(ws models.Workspace, members []models.WorkspaceMember, yourRole models.Role) WorkspaceDetailDTO {
	memberDTOs := make([]WorkspaceMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToWorkspaceMemberDTO(member)
	}

	return WorkspaceDetailDTO{
		WorkspaceDTO: ToWorkspaceDTO(ws),
		Members:      memberDTOs,
		YourRole:     yourRole,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedBy:   task.CreatedBy,
		AssignedTo:  task.AssignedTo,
		WorkspaceID: task.WorkspaceID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.AssignedTo != nil && task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskDTOs converts a list of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
