package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/workspace-tasks/internal/database"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Args:    cobra.NoArgs,
		Aliases: []string{"m"},
		Short:   "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap(*configPath)
			if err != nil {
				return err
			}

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := database.Migrate(db, log); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			log.Info("migrations applied")
			return nil
		},
	}
}
