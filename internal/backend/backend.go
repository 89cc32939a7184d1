// Package backend connects the workflow to the discovery/analysis service.
package backend

import (
	"context"
	"time"

	"github.com/yildizm/TrendLens/internal/cache"
	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/workflow"
)

// Provider is a complete backend implementation
type Provider interface {
	workflow.Discoverer
	workflow.Analyzer
	Name() string
	HealthCheck(ctx context.Context) error
}

// Backend is a provider with its analysis cache
type Backend struct {
	provider Provider
	analyzer workflow.Analyzer
	store    cache.Store
}

// New selects the provider named by cfg.Provider. store may be nil to
// disable caching; the backend owns it from here on.
func New(cfg config.BackendConfig, store cache.Store, ttl time.Duration, log *logger.Logger) (*Backend, error) {
	var (
		provider Provider
		err      error
	)
	switch cfg.Provider {
	case "offline":
		provider = NewOffline()
	case "http", "":
		provider, err = NewHTTPClient(cfg, log)
		if err != nil {
			return nil, err
		}
	default:
		return nil, NewError(ErrTypeConfiguration, "", "unknown provider: "+cfg.Provider)
	}

	return NewWithProvider(provider, store, ttl, log), nil
}

// NewWithProvider wraps an existing provider
func NewWithProvider(provider Provider, store cache.Store, ttl time.Duration, log *logger.Logger) *Backend {
	b := &Backend{provider: provider, analyzer: provider, store: store}
	if store == nil {
		b.store = cache.Nop{}
		return b
	}
	if _, off := store.(cache.Nop); !off {
		b.analyzer = cache.NewCached(provider, store, ttl, log)
	}
	return b
}

// Services returns the collaborators for the workflow controller
func (b *Backend) Services() workflow.Services {
	return workflow.Services{Discovery: b.provider, Analysis: b.analyzer}
}

// Provider returns the underlying provider
func (b *Backend) Provider() Provider {
	return b.provider
}

// HealthCheck checks that the provider is reachable
func (b *Backend) HealthCheck(ctx context.Context) error {
	return b.provider.HealthCheck(ctx)
}

// Close releases the cache
func (b *Backend) Close() error {
	return b.store.Close()
}
