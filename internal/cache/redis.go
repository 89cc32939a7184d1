package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yildizm/TrendLens/internal/logger"
)

// Redis is a store backed by a Redis server. If the URL is empty, invalid or
// the server does not answer, the store is disabled and every operation is a
// no-op.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects to redisURL
func NewRedis(ctx context.Context, redisURL string, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("cache")

	if redisURL == "" {
		log.Warn("redis: no URL configured, caching disabled")
		return &Redis{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.WarnWithFields("redis: invalid URL, caching disabled", []logger.Field{logger.Error(err)})
		return &Redis{}
	}

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.WarnWithFields("redis: connection failed, caching disabled", []logger.Field{logger.Error(err)})
		_ = rdb.Close()
		return &Redis{}
	}

	log.Info("redis: connected, caching enabled")
	return &Redis{rdb: rdb}
}

// NewRedisFromClient wraps an existing client
func NewRedisFromClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Enabled reports whether a server connection is available
func (r *Redis) Enabled() bool {
	return r.rdb != nil
}

// Get returns the cached value or nil on a miss
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if r.rdb == nil {
		return nil, nil
	}
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

// Set stores value with ttl
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

// Close shuts down the Redis connection
func (r *Redis) Close() error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
