package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
	"github.com/yildizm/TrendLens/internal/workflow"
)

// Cached is a cache-aside wrapper around an analyzer keyed by
// AnalysisRequest.CacheKey. Cache failures are logged and never fail a call.
type Cached struct {
	next  workflow.Analyzer
	store Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewCached wraps next with store
func NewCached(next workflow.Analyzer, store Store, ttl time.Duration, log *logger.Logger) *Cached {
	if log == nil {
		log = logger.Nop()
	}
	return &Cached{
		next:  next,
		store: store,
		ttl:   ttl,
		log:   log.WithComponent("cache"),
	}
}

// Analyze serves req from the cache, falling back to the wrapped analyzer
func (c *Cached) Analyze(ctx context.Context, req query.AnalysisRequest) ([]video.Record, error) {
	key := req.CacheKey()

	if data, err := c.store.Get(ctx, key); err != nil {
		c.log.WarnWithFields("cache read failed", []logger.Field{logger.F("key", key), logger.Error(err)})
	} else if data != nil {
		var videos []video.Record
		if err := json.Unmarshal(data, &videos); err == nil {
			c.log.DebugWithFields("cache hit", []logger.Field{logger.F("key", key), logger.Count(len(videos))})
			return videos, nil
		}
		c.log.WarnWithFields("discarding corrupt cache entry", []logger.Field{logger.F("key", key)})
	}

	videos, err := c.next.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(videos)
	if err != nil {
		return videos, nil
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.log.WarnWithFields("cache write failed", []logger.Field{logger.F("key", key), logger.Error(err)})
	}
	return videos, nil
}
