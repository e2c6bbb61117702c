package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expofeedback/internal/config"
	"expofeedback/internal/infra"
	"expofeedback/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := initEnv()
			if err != nil {
				return err
			}

			db, err := infra.InitDatabase(cfg.Database, log)
			if err != nil {
				return err
			}
			defer infra.CloseDatabase(db, log)

			if err := infra.Migrate(db); err != nil {
				return err
			}
			log.Info("migrations applied")
			return nil
		},
	}
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.Init(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
