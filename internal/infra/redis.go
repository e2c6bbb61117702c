package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"expofeedback/internal/config"
	"expofeedback/pkg/logger"
)

// InitRedis returns nil when Redis is disabled or unreachable; the submission lock then runs
// in memory only.
func InitRedis(cfg config.RedisConfig, log logger.Interface) *redis.Client {
	if !cfg.Enabled {
		log.Info("redis disabled, submission lock is process-local")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, submission lock is process-local", "addr", cfg.Addr, "error", err)
		_ = client.Close()
		return nil
	}

	log.Info("redis connection established", "addr", cfg.Addr)
	return client
}
