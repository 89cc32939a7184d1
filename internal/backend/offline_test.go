package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/TrendLens/internal/cache"
	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/query"
)

func TestOfflineDiscover(t *testing.T) {
	o := NewOffline()

	keywords, err := o.Discover(context.Background(), query.BuildDiscoveryRequest(" fitness "))
	require.NoError(t, err)
	require.NotEmpty(t, keywords)
	assert.Equal(t, "fitness", keywords[0])
	assert.Len(t, keywords, len(offlineKeywordPatterns)+1)
}

func TestOfflineViralIdeas(t *testing.T) {
	o := NewOffline()

	ideas, err := o.GenerateViralIdeas(context.Background())
	require.NoError(t, err)
	assert.Len(t, ideas, 7)

	ideas[0] = "mutated"
	again, _ := o.GenerateViralIdeas(context.Background())
	assert.NotEqual(t, "mutated", again[0])
}

func TestOfflineAnalyzeHonorsFilters(t *testing.T) {
	o := NewOffline()
	ctx := context.Background()

	tests := []struct {
		name    string
		filters filter.State
	}{
		{"defaults", filter.Default()},
		{"small channels", filter.Default().WithSmallChannelsOnly(true)},
		{"narrow range", mustRange(t, filter.Default(), 20, 60)},
		{"seven months", mustWindow(t, filter.Default(), filter.TimeWindow7Months)},
		{"hours", mustWindow(t, filter.Default(), filter.TimeWindowHours)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := query.BuildAnalysisRequest("home workouts", tt.filters)
			videos, err := o.Analyze(ctx, req)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(videos), maxResults)

			maxDays := maxDaysByWindow[req.TimeFilter]
			for i, v := range videos {
				assert.GreaterOrEqual(t, v.ViewCount, req.MinViewCount)
				assert.LessOrEqual(t, v.ViewCount, req.MaxViewCount)
				assert.LessOrEqual(t, v.PublishedDaysAgo, maxDays)
				if req.SmallChannelsOnly {
					assert.LessOrEqual(t, v.SubscriberCount, int64(smallChannelLimit))
				}
				assert.Equal(t, v.ViralScore > viralGemThreshold, v.IsViralGem)
				if i > 0 {
					assert.GreaterOrEqual(t, videos[i-1].ViralScore, v.ViralScore)
				}
			}
		})
	}
}

func TestOfflineAnalyzeDeterministic(t *testing.T) {
	o := NewOffline()
	req := query.BuildAnalysisRequest("budget gym", mustWindow(t, filter.Default(), filter.TimeWindow7Months))

	first, err := o.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := o.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOfflineAnalyzeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOffline().Analyze(ctx, query.BuildAnalysisRequest("x", filter.Default()))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestViralScore(t *testing.T) {
	assert.Equal(t, 12.5, ViralScore(50_000, 4_000))
	assert.Equal(t, 0.33, ViralScore(1, 3))
	assert.Equal(t, 100.0, ViralScore(100, 0))
}

func TestNewBackend(t *testing.T) {
	cfg := config.DefaultConfig().Backend

	cfg.Provider = "offline"
	b, err := New(cfg, cache.NewMemory(), time.Minute, nil)
	require.NoError(t, err)
	assert.Equal(t, "offline", b.Provider().Name())
	assert.IsType(t, &cache.Cached{}, b.Services().Analysis)
	assert.NoError(t, b.HealthCheck(context.Background()))
	assert.NoError(t, b.Close())

	b, err = New(cfg, nil, time.Minute, nil)
	require.NoError(t, err)
	assert.IsType(t, &Offline{}, b.Services().Analysis)

	cfg.Provider = "http"
	b, err = New(cfg, cache.Nop{}, time.Minute, nil)
	require.NoError(t, err)
	assert.Equal(t, "http", b.Provider().Name())
	assert.IsType(t, &HTTPClient{}, b.Services().Analysis)

	cfg.Provider = "grpc"
	_, err = New(cfg, nil, time.Minute, nil)
	assert.Error(t, err)
}

func mustRange(t *testing.T, s filter.State, low, high int) filter.State {
	t.Helper()
	out, err := s.WithViewRange(low, high)
	require.NoError(t, err)
	return out
}

func mustWindow(t *testing.T, s filter.State, tw filter.TimeWindow) filter.State {
	t.Helper()
	out, err := s.WithTimeWindow(tw)
	require.NoError(t, err)
	return out
}
