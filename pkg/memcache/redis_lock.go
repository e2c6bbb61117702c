package mem

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock shares the lock across instances. When Redis errors it falls back to a
// process-local lock so a Redis outage never blocks submissions.
type RedisLock struct {
	client    *redis.Client
	keyPrefix string
	timeout   time.Duration
	fallback  *MemoryLock
}

func NewRedisLock(client *redis.Client, keyPrefix string) *RedisLock {
	return &RedisLock{
		client:    client,
		keyPrefix: keyPrefix,
		timeout:   800 * time.Millisecond,
		fallback:  NewMemoryLock(),
	}
}

func (l *RedisLock) fullKey(key string) string {
	return fmt.Sprintf("%s:submit-lock:%s", l.keyPrefix, key)
}

func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if l.client == nil {
		return l.fallback.Acquire(ctx, key, ttl)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.fullKey(key), token, ttl).Result()
	if err != nil {
		return l.fallback.Acquire(ctx, key, ttl)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (l *RedisLock) Release(ctx context.Context, key, token string) error {
	if l.client == nil {
		return l.fallback.Release(ctx, key, token)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	err := releaseScript.Run(ctx, l.client, []string{l.fullKey(key)}, token).Err()
	// the token may have been issued by the fallback during an outage
	_ = l.fallback.Release(ctx, key, token)
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release submission lock: %w", err)
	}
	return nil
}
