package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/workspace-tasks/internal/config"
	"github.com/yukikurage/workspace-tasks/internal/database"
	"github.com/yukikurage/workspace-tasks/internal/logging"
	"gorm.io/gorm"
)

// newRootCmd creates the root command. Running it without a subcommand
// starts the server.
func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "server",
		Short:        "Multi-tenant workspace task API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (yaml, toml or json)")

	rootCmd.AddCommand(
		newServeCommand(&configPath),
		newMigrateCommand(&configPath),
	)

	return rootCmd
}

// bootstrap loads configuration, builds the logger and opens the database.
func bootstrap(configPath string) (*config.Config, *logrus.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.Log, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	log.WithField("config", cfg.String()).Debug("configuration loaded")

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return cfg, log, db, nil
}
