package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
)

type countingAnalyzer struct {
	calls  int
	videos []video.Record
	err    error
}

func (a *countingAnalyzer) Analyze(context.Context, query.AnalysisRequest) ([]video.Record, error) {
	a.calls++
	return a.videos, a.err
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection reset")
}

func (brokenStore) Close() error { return nil }

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	now = now.Add(time.Minute)
	got, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, m.Len())

	require.NoError(t, m.Set(ctx, "forever", []byte("x"), 0))
	now = now.Add(24 * time.Hour)
	got, _ = m.Get(ctx, "forever")
	assert.Equal(t, []byte("x"), got)
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value, time.Minute))
	value[0] = 'z'

	got, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), got)

	got[0] = 'y'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)

	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.Len())
}

func TestRedisDisabledWithoutURL(t *testing.T) {
	r := NewRedis(context.Background(), "", nil)
	assert.False(t, r.Enabled())

	ctx := context.Background()
	require.NoError(t, r.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, r.Close())
}

func TestRedisDisabledWithInvalidURL(t *testing.T) {
	r := NewRedis(context.Background(), "not a url", nil)
	assert.False(t, r.Enabled())
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, config.CacheConfig{Backend: "none"}, nil)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, s)

	s, err = New(ctx, config.CacheConfig{Backend: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = New(ctx, config.CacheConfig{Backend: "redis"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, s)

	_, err = New(ctx, config.CacheConfig{Backend: "memcached"}, nil)
	assert.Error(t, err)
}

func TestCachedAnalyzer(t *testing.T) {
	next := &countingAnalyzer{videos: []video.Record{{VideoID: "a", ViralScore: 12.5, IsViralGem: true}}}
	c := NewCached(next, NewMemory(), time.Minute, nil)
	ctx := context.Background()
	req := query.BuildAnalysisRequest("home workouts", filter.Default())

	first, err := c.Analyze(ctx, req)
	require.NoError(t, err)
	second, err := c.Analyze(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)

	// any filter change is a different key
	other := req
	other.TimeFilter = filter.TimeWindowMonth
	_, err = c.Analyze(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCachedDoesNotStoreFailures(t *testing.T) {
	next := &countingAnalyzer{err: errors.New("HTTP 500")}
	store := NewMemory()
	c := NewCached(next, store, time.Minute, nil)

	_, err := c.Analyze(context.Background(), query.BuildAnalysisRequest("x", filter.Default()))
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestCachedToleratesBrokenStore(t *testing.T) {
	next := &countingAnalyzer{videos: []video.Record{{VideoID: "a"}}}
	c := NewCached(next, brokenStore{}, time.Minute, nil)

	videos, err := c.Analyze(context.Background(), query.BuildAnalysisRequest("x", filter.Default()))
	require.NoError(t, err)
	assert.Len(t, videos, 1)
}

func TestCachedDiscardsCorruptEntry(t *testing.T) {
	next := &countingAnalyzer{videos: []video.Record{{VideoID: "fresh"}}}
	store := NewMemory()
	req := query.BuildAnalysisRequest("x", filter.Default())
	require.NoError(t, store.Set(context.Background(), req.CacheKey(), []byte("{not json"), time.Minute))

	c := NewCached(next, store, time.Minute, nil)
	videos, err := c.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "fresh", videos[0].VideoID)
	assert.Equal(t, 1, next.calls)
}
