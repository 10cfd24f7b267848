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
	ErrTaskNotFound      = errors.New("task not found")
	ErrNotTaskCreator    = errors.New("only the task creator can perform this action")
	ErrTitleRequired     = errors.New("title is required")
	ErrTitleTooLong      = errors.New("title is too long")
	ErrInvalidTaskStatus = errors.New("status must be one of TODO, IN_PROGRESS, DONE")
	ErrInvalidAssignee   = errors.New("assignee is not a member of the workspace")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo   repository.TaskRepository
	memberRepo repository.MembershipRepository
	membership *MembershipService
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	memberRepo repository.MembershipRepository,
	membership *MembershipService,
) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
		membership: membership,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	WorkspaceID uint64
	ActorID     uint64
	Title       string
	Description string
	AssignedTo  *uint64
}

// Create creates a TODO task in the workspace. Only admins may create tasks.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if _, err := s.membership.RequireAdmin(input.ActorID, input.WorkspaceID); err != nil {
		return nil, err
	}

	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	if input.AssignedTo != nil {
		if err := s.ensureAssignable(*input.AssignedTo, input.WorkspaceID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      models.TaskStatusTodo,
		CreatedBy:   input.ActorID,
		AssignedTo:  input.AssignedTo,
		WorkspaceID: input.WorkspaceID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.reload(task.ID)
}

// ListForWorkspace returns all tasks of a workspace to any of its members.
func (s *TaskService) ListForWorkspace(workspaceID, actorID uint64) ([]models.Task, error) {
	if _, err := s.membership.RequireMember(actorID, workspaceID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByWorkspace(workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListAssignedTo returns tasks assigned to the user across all workspaces,
// most recent first.
func (s *TaskService) ListAssignedTo(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListAssignedTo(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}
	return tasks, nil
}

// ListCreatedBy returns tasks the user created, most recent first.
func (s *TaskService) ListCreatedBy(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListCreatedBy(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list created tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus moves a task to another status. Any member of the task's
// workspace may do so, in any direction.
func (s *TaskService) UpdateStatus(taskID, actorID uint64, rawStatus string) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.membership.RequireMember(actorID, task.WorkspaceID); err != nil {
		return nil, err
	}

	status, ok := models.ParseTaskStatus(rawStatus)
	if !ok {
		return nil, ErrInvalidTaskStatus
	}

	if err := s.taskRepo.UpdateStatus(task.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return s.reload(task.ID)
}

// EditTaskInput represents the editable content of a task
type EditTaskInput struct {
	TaskID      uint64
	ActorID     uint64
	Title       string
	Description string
}

// Edit replaces a task's title and description. Only the creator may edit.
func (s *TaskService) Edit(input EditTaskInput) (*models.Task, error) {
	task, err := s.findTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	if task.CreatedBy != input.ActorID {
		return nil, ErrNotTaskCreator
	}

	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateContent(task.ID, title, input.Description); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.reload(task.ID)
}

// Delete removes a task. Only admins of the task's workspace may delete.
func (s *TaskService) Delete(taskID, actorID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}

	if _, err := s.membership.RequireAdmin(actorID, task.WorkspaceID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) reload(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ensureAssignable(userID, workspaceID uint64) error {
	if _, err := s.memberRepo.FindMember(workspaceID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAssignee
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	return nil
}

func normalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrTitleRequired
	}
	if len(title) > constants.MaxTaskTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
