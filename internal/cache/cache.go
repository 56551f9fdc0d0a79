package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Invalidator drops cached per-account entries after balance mutations.
// Invalidation is best effort: callers log failures and carry on.
type Invalidator interface {
	InvalidateAccount(ctx context.Context, tgID int64) error
}

// Noop is used when no cache backend is configured.
type Noop struct{}

// InvalidateAccount does nothing.
func (Noop) InvalidateAccount(context.Context, int64) error { return nil }

// redisCmd is the subset of redis client operations the invalidator needs.
type redisCmd interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisInvalidator removes account keys from Redis.
type RedisInvalidator struct {
	client redisCmd
}

// NewRedis connects to Redis at url and verifies the connection.
func NewRedis(ctx context.Context, url string) (*RedisInvalidator, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &RedisInvalidator{client: client}, nil
}

// InvalidateAccount deletes the cached account entry and its stats key.
func (r *RedisInvalidator) InvalidateAccount(ctx context.Context, tgID int64) error {
	keys := []string{
		fmt.Sprintf("user:%d", tgID),
		fmt.Sprintf("user:%d:stats", tgID),
	}
	return r.client.Del(ctx, keys...).Err()
}

// New picks a Redis-backed invalidator when url is set, degrading to Noop
// when the connection cannot be established.
func New(ctx context.Context, url string, logger *slog.Logger) Invalidator {
	if url == "" {
		logger.Warn("redis url not set, cache invalidation disabled")
		return Noop{}
	}

	inv, err := NewRedis(ctx, url)
	if err != nil {
		logger.Warn("redis unavailable, cache invalidation disabled", slog.String("error", err.Error()))
		return Noop{}
	}

	logger.Info("redis cache invalidation enabled")
	return inv
}
