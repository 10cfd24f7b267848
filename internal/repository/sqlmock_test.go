package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-tasks/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB returns a MySQL-dialect GORM handle backed by sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return db, mock
}

func TestMembershipRepository_AddMember_ConflictIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `workspace_members`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	added, err := repo.AddMember(&models.WorkspaceMember{UserID: 2, WorkspaceID: 1, Role: models.RoleMember})
	require.NoError(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_AddMember_Inserted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `workspace_members`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	member := &models.WorkspaceMember{UserID: 2, WorkspaceID: 1, Role: models.RoleMember}
	added, err := repo.AddMember(member)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, uint64(5), member.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipRepository_AddMember_StoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMembershipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `workspace_members`").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	added, err := repo.AddMember(&models.WorkspaceMember{UserID: 2, WorkspaceID: 1, Role: models.RoleMember})
	require.Error(t, err)
	assert.False(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_CreateWithAdmin_RollsBackOnMemberFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWorkspaceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `workspaces`").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO `workspace_members`").
		WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	err := repo.CreateWithAdmin(
		&models.Workspace{Name: "Eng", CreatedBy: 1},
		&models.WorkspaceMember{UserID: 1, Role: models.RoleAdmin},
	)
	require.ErrorIs(t, err, ErrCreateAdminMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_Delete_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWorkspaceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `tasks`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `workspace_members`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `workspaces`").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := repo.Delete(1)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
