package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/workspace-tasks/internal/dto"
	apierrors "github.com/yukikurage/workspace-tasks/internal/errors"
	"github.com/yukikurage/workspace-tasks/internal/middleware"
	"github.com/yukikurage/workspace-tasks/internal/models"
	"github.com/yukikurage/workspace-tasks/internal/services"
)

// WorkspaceHandler serves workspace routes, including the workspace-scoped
// task collection.
type WorkspaceHandler struct {
	workspaceService *services.WorkspaceService
	taskService      *services.TaskService
	log              logrus.FieldLogger
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService *services.WorkspaceService, taskService *services.TaskService, log logrus.FieldLogger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		taskService:      taskService,
		log:              log,
	}
}

// ListWorkspaces returns all workspaces the user is a member of
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	memberships, err := h.workspaceService.ListForUser(userID)
	if err != nil {
		h.respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workspaces": dto.ToWorkspaceWithRoleDTOs(memberships),
	})
}

// CreateWorkspace creates a new workspace with the caller as admin
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return
	}

	type CreateWorkspaceRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ws, err := h.workspaceService.Create(services.CreateWorkspaceInput{
		Name:    req.Name,
		OwnerID: userID,
	})
	if err != nil {
		h.respondWorkspaceError(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{"workspace_id": ws.ID, "user_id": userID}).Info("workspace created")

	c.JSON(http.StatusCreated, dto.WorkspaceWithRoleDTO{
		WorkspaceDTO: dto.ToWorkspaceDTO(*ws),
		Role:         models.RoleAdmin,
	})
}

// GetWorkspace returns the workspace dashboard
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(c)
	if !ok {
		return
	}

	detail, err := h.workspaceService.Get(workspaceID, userID)
	if err != nil {
		h.respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceDetailDTO(*detail.Workspace, detail.Members, detail.Role))
}

// DeleteWorkspace deletes the workspace with its tasks and memberships
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(c)
	if !ok {
		return
	}

	if err := h.workspaceService.Delete(workspaceID, userID); err != nil {
		h.respondWorkspaceError(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{"workspace_id": workspaceID, "user_id": userID}).Info("workspace deleted")

	c.JSON(http.StatusOK, gin.H{
		"message": "Workspace deleted successfully",
	})
}

// AddMember adds a user to the workspace by username
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(c)
	if !ok {
		return
	}

	type AddMemberRequest struct {
		Username string `json:"username" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, added, err := h.workspaceService.AddMember(services.AddMemberInput{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Username:    req.Username,
	})
	if err != nil {
		h.respondWorkspaceError(c, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}

	c.JSON(status, dto.AddMemberResponse{
		Member: dto.ToWorkspaceMemberDTO(*member),
		Added:  added,
	})
}

// ListTasks returns every task in the workspace
func (h *WorkspaceHandler) ListTasks(c *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListForWorkspace(workspaceID, userID)
	if err != nil {
		h.respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// CreateTask creates a task in the workspace
func (h *WorkspaceHandler) CreateTask(c *gin.Context) {
	userID, workspaceID, ok := workspaceRequest(c)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		AssignedTo  *uint64 `json:"assigned_to"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		h.respondWorkspaceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

func (h *WorkspaceHandler) respondWorkspaceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidWorkspaceName),
		errors.Is(err, services.ErrWorkspaceNameTooLong),
		errors.Is(err, services.ErrMemberUsernameRequired),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotWorkspaceMember),
		errors.Is(err, services.ErrNotWorkspaceAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondInternal(c, h.log, err)
	}
}

// workspaceRequest extracts the caller and the :id parsed by middleware.
func workspaceRequest(c *gin.Context) (userID, workspaceID uint64, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "Not authenticated")
		return 0, 0, false
	}

	workspaceID, exists = middleware.GetWorkspaceID(c)
	if !exists {
		apierrors.BadRequest(c, "Invalid workspace ID")
		return 0, 0, false
	}

	return userID, workspaceID, true
}
