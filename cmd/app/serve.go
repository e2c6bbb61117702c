package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"expofeedback/cmd/fx/account_fx"
	"expofeedback/cmd/fx/catalog_fx"
	"expofeedback/cmd/fx/config_fx"
	"expofeedback/cmd/fx/dashboard_fx"
	"expofeedback/cmd/fx/db_fx"
	"expofeedback/cmd/fx/feedback_fx"
	"expofeedback/cmd/fx/http_fx"
	"expofeedback/cmd/fx/lock_fx"
	"expofeedback/cmd/fx/protection_fx"
	"expofeedback/cmd/fx/settings_fx"
	"expofeedback/cmd/fx/submission_log_fx"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := newApp()
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func newApp() *fx.App {
	return fx.New(
		fx.Supply(config_fx.ConfigPath(configPath)),
		fx.NopLogger,
		config_fx.Module,
		db_fx.Module,
		lock_fx.Module,
		settings_fx.Module,
		submission_log_fx.Module,
		feedback_fx.Module,
		protection_fx.Module,
		account_fx.Module,
		dashboard_fx.Module,
		catalog_fx.Module,
		http_fx.Module,
	)
}
