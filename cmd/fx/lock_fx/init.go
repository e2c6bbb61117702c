package lock_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"expofeedback/internal/config"
	mem "expofeedback/pkg/memcache"
)

var Module = fx.Provide(provideSubmissionLock)

func provideSubmissionLock(client *redis.Client, cfg *config.Config) mem.SubmissionLock {
	return mem.NewRedisLock(client, cfg.Protection.LockKeyPrefix)
}
