// Package cache provides a cache-aside layer for analysis responses.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/logger"
)

// Store is a byte-oriented key/value cache. A miss is (nil, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Nop never stores anything
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Nop) Close() error { return nil }

// New builds the store selected by cfg.Backend
func New(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "none":
		return Nop{}, nil
	case "memory":
		return NewMemory(), nil
	case "redis":
		return NewRedis(ctx, cfg.RedisURL, log), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
