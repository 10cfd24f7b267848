package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/workspace-tasks/internal/dto"
	apierrors "github.com/yukikurage/workspace-tasks/internal/errors"
	"github.com/yukikurage/workspace-tasks/internal/middleware"
	"github.com/yukikurage/workspace-tasks/internal/services"
)

// TaskHandler serves the task routes that are not scoped by workspace.
type TaskHandler struct {
	taskService *services.TaskService
	log         logrus.FieldLogger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// ListMyTasks returns tasks assigned to the caller
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListAssignedTo(userID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// ListCreatedTasks returns tasks the caller created
func (h *TaskHandler) ListCreatedTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListCreatedBy(userID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// UpdateTaskStatus moves a task to a new status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	userID, taskID, ok := taskRequest(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateStatus(taskID, userID, req.Status)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// EditTask replaces a task's title and description
func (h *TaskHandler) EditTask(c *gin.Context) {
	userID, taskID, ok := taskRequest(c)
	if !ok {
		return
	}

	type EditTaskRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	var req EditTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Edit(services.EditTaskInput{
		TaskID:      taskID,
		ActorID:     userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := taskRequest(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(taskID, userID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceMember),
		errors.Is(err, services.ErrNotWorkspaceAdmin),
		errors.Is(err, services.ErrNotTaskCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondInternal(c, h.log, err)
	}
}

func taskRequest(c *gin.Context) (userID, taskID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return 0, 0, false
	}

	taskID, exists = middleware.GetTaskID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, 0, false
	}

	return userID, taskID, true
}
