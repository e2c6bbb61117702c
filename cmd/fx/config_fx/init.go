package config_fx

import (
	"go.uber.org/fx"

	"expofeedback/internal/config"
	"expofeedback/pkg/logger"
)

// ConfigPath is the optional explicit config file supplied on the command line.
type ConfigPath string

var Module = fx.Provide(provideConfig, provideLogger)

func provideConfig(path ConfigPath) (*config.Config, error) {
	return config.Load(string(path))
}

func provideLogger(cfg *config.Config) (logger.Interface, error) {
	return logger.Init(cfg.Logger)
}
