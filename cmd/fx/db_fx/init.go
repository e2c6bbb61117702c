package db_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"expofeedback/internal/config"
	"expofeedback/internal/infra"
	"expofeedback/pkg/logger"
)

var Module = fx.Provide(
	provideDB, provideRedis)

func provideDB(lc fx.Lifecycle, cfg *config.Config, log logger.Interface) (*gorm.DB, error) {
	db, err := infra.InitDatabase(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := infra.Migrate(db); err != nil {
			return nil, err
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db, log)
			return nil
		},
	})
	return db, nil
}

// provideRedis yields a nil client when Redis is off; consumers must handle that.
func provideRedis(lc fx.Lifecycle, cfg *config.Config, log logger.Interface) *redis.Client {
	client := infra.InitRedis(cfg.Redis, log)
	if client != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
	}
	return client
}
