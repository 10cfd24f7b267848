package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/workspace-tasks/internal/models"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// secondaryIndexes are the lookup indexes not expressed in model tags.
// The (user_id, workspace_id) uniqueness of memberships lives on the model.
var secondaryIndexes = []index{
	{"workspaces", "idx_workspaces_created_by", "created_by"},

	// Membership lookups by workspace (dashboard, cascade delete)
	{"workspace_members", "idx_workspace_members_workspace_id", "workspace_id"},

	// Task listing and cascade delete
	{"tasks", "idx_tasks_workspace_id", "workspace_id"},
	{"tasks", "idx_tasks_assigned_to", "assigned_to"},
	{"tasks", "idx_tasks_created_by", "created_by"},
	{"tasks", "idx_tasks_created_at", "created_at"},
}

// Migrate creates or updates the schema and its indexes.
func Migrate(db *gorm.DB, log logrus.FieldLogger) error {
	log.Info("Running database migrations...")
	err := db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

// AddIndexes creates the secondary indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log logrus.FieldLogger) error {
	migrator := db.Migrator()

	for _, idx := range secondaryIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(logrus.Fields{
			"index":   idx.name,
			"table":   idx.table,
			"columns": idx.columns,
		}).Info("Created index")
	}

	return nil
}
