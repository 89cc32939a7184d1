package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/TrendLens/internal/filter"
)

func TestBuildDiscoveryRequest(t *testing.T) {
	req := BuildDiscoveryRequest("fitness")

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"niche":"fitness"}`, string(data))
}

func TestBuildAnalysisRequestDefaults(t *testing.T) {
	req := BuildAnalysisRequest("home workouts", filter.Default())

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"keyword": "home workouts",
		"time_filter": "7_days",
		"video_type": "any",
		"small_channels_only": false,
		"min_view_count": 1000,
		"max_view_count": 10000000
	}`, string(data))
}

func TestBuildAnalysisRequestUsesCurrentFilters(t *testing.T) {
	f := filter.Default()
	first := BuildAnalysisRequest("kw", f)

	f, err := f.WithViewRange(0, 50)
	require.NoError(t, err)
	f = f.WithSmallChannelsOnly(true)
	f, err = f.WithTimeWindow(filter.TimeWindowHours)
	require.NoError(t, err)

	second := BuildAnalysisRequest("kw", f)

	assert.Equal(t, int64(10000000), first.MaxViewCount)
	assert.Equal(t, int64(100000), second.MaxViewCount)
	assert.True(t, second.SmallChannelsOnly)
	assert.Equal(t, filter.TimeWindowHours, second.TimeFilter)
}

func TestCacheKey(t *testing.T) {
	a := BuildAnalysisRequest("home workouts", filter.Default())
	assert.Equal(t, a.CacheKey(), BuildAnalysisRequest("home workouts", filter.Default()).CacheKey())

	// the backend receives the keyword verbatim, so the key does too
	assert.NotEqual(t, a.CacheKey(), BuildAnalysisRequest("Home Workouts", filter.Default()).CacheKey())
	assert.NotEqual(t, a.CacheKey(), BuildAnalysisRequest("home workouts ", filter.Default()).CacheKey())

	f, _ := filter.Default().WithVideoFormat(filter.VideoFormatShorts)
	c := BuildAnalysisRequest("home workouts", f)
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}
