package database

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workspace-tasks/internal/config"
	"github.com/yukikurage/workspace-tasks/internal/models"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}, quietLogger())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		Port:     "3306",
		User:     "u",
		Password: "p",
		Name:     "tasks",
	}

	assert.Equal(t, "u:p@tcp(db:3306)/tasks?charset=utf8mb4&parseTime=True&loc=Local", MySQLDSN(cfg))
	assert.Contains(t, PostgresDSN(cfg), "host=db port=3306 user=u password=p dbname=tasks")
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(config.DatabaseConfig{Driver: driver, Path: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	log := quietLogger()

	require.NoError(t, Migrate(db, log))
	require.NoError(t, Migrate(db, log))

	migrator := db.Migrator()
	for _, table := range []interface{}{&models.User{}, &models.Workspace{}, &models.WorkspaceMember{}, &models.Task{}} {
		assert.True(t, migrator.HasTable(table))
	}
	for _, idx := range secondaryIndexes {
		assert.True(t, migrator.HasIndex(idx.table, idx.name), idx.name)
	}
	assert.True(t, migrator.HasIndex(&models.WorkspaceMember{}, "idx_workspace_members_user_workspace"))
}

func TestOpen_TranslatesDuplicateKey(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db, quietLogger()))

	require.NoError(t, db.Create(&models.User{Username: "alice", PasswordHash: "x"}).Error)
	err := db.Create(&models.User{Username: "alice", PasswordHash: "y"}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
