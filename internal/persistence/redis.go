package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

var errNotConfigured = errors.New("redis client not configured")

// Redis wraps the go-redis client used as a read cache for ticket tracking.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errNotConfigured
	}
	return r.Client.Ping(ctx).Err()
}

// Get returns the cached value for key. A miss surfaces as redis.Nil.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if r == nil || r.Client == nil {
		return nil, errNotConfigured
	}
	return r.Client.Get(ctx, key).Bytes()
}

// Set stores value under key for ttl.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r == nil || r.Client == nil {
		return errNotConfigured
	}
	return r.Client.Set(ctx, key, value, ttl).Err()
}

// Del removes key.
func (r *Redis) Del(ctx context.Context, key string) error {
	if r == nil || r.Client == nil {
		return errNotConfigured
	}
	return r.Client.Del(ctx, key).Err()
}
