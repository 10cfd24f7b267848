package router

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/workspace-tasks/internal/config"
	"github.com/yukikurage/workspace-tasks/internal/constants"
	"github.com/yukikurage/workspace-tasks/internal/handlers"
	"github.com/yukikurage/workspace-tasks/internal/logging"
	"github.com/yukikurage/workspace-tasks/internal/middleware"
	"github.com/yukikurage/workspace-tasks/internal/repository"
	"github.com/yukikurage/workspace-tasks/internal/services"
	"gorm.io/gorm"
)

// redisPoolSize is the number of idle connections kept to Redis.
const redisPoolSize = 10

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	DB           *gorm.DB
	Log          logrus.FieldLogger
	SessionStore sessions.Store
}

// NewSessionStore builds the session store selected by cfg.Session.Store.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.Session.Store {
	case "redis":
		s, err := redisStore.NewStore(
			redisPoolSize,
			"tcp",
			cfg.Redis.Addr(),
			"", // password (empty = no password)
			[]byte(cfg.Session.Secret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis session store: %w", err)
		}
		store = s
	case "cookie":
		store = cookie.NewStore([]byte(cfg.Session.Secret))
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.Server.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})

	return store, nil
}

// New wires repositories, services and handlers into a gin engine.
func New(deps Dependencies) *gin.Engine {
	userRepo := repository.NewUserRepository(deps.DB)
	workspaceRepo := repository.NewWorkspaceRepository(deps.DB)
	memberRepo := repository.NewMembershipRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)

	membershipService := services.NewMembershipService(memberRepo)
	authService := services.NewAuthService(userRepo)
	workspaceService := services.NewWorkspaceService(workspaceRepo, memberRepo, userRepo, membershipService)
	taskService := services.NewTaskService(taskRepo, memberRepo, membershipService)

	authHandler := handlers.NewAuthHandler(authService, deps.Log)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, taskService, deps.Log)
	taskHandler := handlers.NewTaskHandler(taskService, deps.Log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))
	r.Use(logging.RequestLogger(deps.Log))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Workspace task API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Workspace routes (protected)
		workspaces := api.Group("/workspaces")
		workspaces.Use(middleware.RequireAuth())
		{
			workspaces.GET("", workspaceHandler.ListWorkspaces)
			workspaces.POST("", workspaceHandler.CreateWorkspace)

			ws := workspaces.Group("/:id", middleware.RequireWorkspaceID())
			ws.GET("", workspaceHandler.GetWorkspace)
			ws.DELETE("", workspaceHandler.DeleteWorkspace)
			ws.POST("/members", workspaceHandler.AddMember)
			ws.GET("/tasks", workspaceHandler.ListTasks)
			ws.POST("/tasks", workspaceHandler.CreateTask)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/mine", taskHandler.ListMyTasks)
			tasks.GET("/created", taskHandler.ListCreatedTasks)

			task := tasks.Group("/:id", middleware.RequireTaskID())
			task.PATCH("", taskHandler.EditTask)
			task.PATCH("/status", taskHandler.UpdateTaskStatus)
			task.DELETE("", taskHandler.DeleteTask)
		}
	}

	return r
}
