package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expofeedback/internal/infra"
	"expofeedback/internal/repositories"
	"expofeedback/internal/services"
	"expofeedback/pkg/utils"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator account tools",
	}
	cmd.AddCommand(newAdminCreateCommand())
	return cmd
}

func newAdminCreateCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dashboard administrator",
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

			tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
			accounts := services.NewAccountService(repositories.NewAdminRepository(db), tokens, cfg.Auth.TokenTTL(), cfg.Auth.BcryptCost, log)

			admin, err := accounts.CreateAdmin(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Username, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Administrator username (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Administrator password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
