package testutil

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-tasks/internal/config"
	"github.com/yukikurage/workspace-tasks/internal/database"
	"github.com/yukikurage/workspace-tasks/internal/models"
	"gorm.io/gorm"
)

// QuietLogger returns a logger that discards everything.
func QuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// OpenTestDB opens a migrated sqlite database in the test's temp dir with
// foreign keys enforced. It is closed via t.Cleanup.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on",
	}, QuietLogger())
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, QuietLogger()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateWorkspace inserts a workspace owned by owner, with owner as admin.
func CreateWorkspace(t *testing.T, db *gorm.DB, name string, owner *models.User) *models.Workspace {
	t.Helper()

	ws := &models.Workspace{
		Name:      name,
		CreatedBy: owner.ID,
	}
	require.NoError(t, db.Create(ws).Error)
	AddMember(t, db, ws, owner, models.RoleAdmin)
	return ws
}

// AddMember inserts a membership row directly.
func AddMember(t *testing.T, db *gorm.DB, ws *models.Workspace, user *models.User, role models.Role) *models.WorkspaceMember {
	t.Helper()

	member := &models.WorkspaceMember{
		UserID:      user.ID,
		WorkspaceID: ws.ID,
		Role:        role,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

// CreateTask inserts a TODO task in ws created by creator.
func CreateTask(t *testing.T, db *gorm.DB, title string, ws *models.Workspace, creator *models.User, assignee *models.User) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Description: "Test Description",
		Status:      models.TaskStatusTodo,
		CreatedBy:   creator.ID,
		WorkspaceID: ws.ID,
	}
	if assignee != nil {
		task.AssignedTo = &assignee.ID
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
