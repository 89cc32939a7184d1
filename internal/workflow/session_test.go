package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
)

// fixedDiscovery returns the same keywords for every niche
type fixedDiscovery []string

func (d fixedDiscovery) Discover(context.Context, query.DiscoveryRequest) ([]string, error) {
	return d, nil
}

func (d fixedDiscovery) GenerateViralIdeas(context.Context) ([]string, error) {
	return d, nil
}

func TestSessionEndToEnd(t *testing.T) {
	fb := &fakeBackend{videos: []video.Record{{VideoID: "v1", Title: "20 min home workout"}}}
	s := NewSession(Services{
		Discovery: fixedDiscovery{"home workouts", "budget gym"},
		Analysis:  fb,
	}, nil)

	require.NoError(t, s.Discover(context.Background(), "fitness"))
	snap := s.Snapshot()
	assert.Equal(t, StepKeywordSelection, snap.Step)
	assert.Equal(t, []string{"home workouts", "budget gym"}, snap.Keywords)

	require.NoError(t, s.SelectKeyword(context.Background(), "home workouts"))
	require.Len(t, fb.analyzed, 1)

	body, err := json.Marshal(fb.analyzed[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"keyword": "home workouts",
		"time_filter": "7_days",
		"video_type": "any",
		"small_channels_only": false,
		"min_view_count": 1000,
		"max_view_count": 10000000
	}`, string(body))

	snap = s.Snapshot()
	assert.Equal(t, StepVideoAnalysis, snap.Step)
	assert.Equal(t, "home workouts", snap.SelectedKeyword)
	assert.Len(t, snap.Videos, 1)
	assert.False(t, snap.Loading)
}

func TestSessionReturnsFailure(t *testing.T) {
	fb := &fakeBackend{discoverErr: errors.New("dial tcp: connection refused")}
	s := NewSession(fb.services(), nil)

	err := s.Discover(context.Background(), "fitness")
	require.Error(t, err)
	assert.True(t, IsDiscoveryFailure(err))
	assert.Equal(t, StepNicheEntry, s.Snapshot().Step)

	assert.ErrorIs(t, s.Discover(context.Background(), " "), ErrEmptyNiche)
}

func TestSessionFilters(t *testing.T) {
	fb := &fakeBackend{keywords: []string{"home workouts"}}
	s := NewSession(fb.services(), nil)
	ctx := context.Background()

	require.NoError(t, s.Discover(ctx, "fitness"))
	require.NoError(t, s.SelectKeyword(ctx, "home workouts"))

	require.NoError(t, s.SetTimeWindow(ctx, filter.TimeWindowMonth))
	require.NoError(t, s.SetVideoFormat(ctx, filter.VideoFormatShorts))
	require.NoError(t, s.SetSmallChannelsOnly(ctx, true))
	assert.Len(t, fb.analyzed, 4)

	require.NoError(t, s.SetViewRange(ctx, 25, 75))
	assert.Len(t, fb.analyzed, 4)
	assert.True(t, s.Snapshot().Dirty)

	require.NoError(t, s.CommitFilters(ctx))
	require.Len(t, fb.analyzed, 5)
	last := fb.analyzed[4]
	assert.Equal(t, filter.TimeWindowMonth, last.TimeFilter)
	assert.Equal(t, filter.VideoFormatShorts, last.VideoType)
	assert.True(t, last.SmallChannelsOnly)
	assert.Equal(t, filter.ViewRange{Low: 25, High: 75}.MaxViews(), last.MaxViewCount)
}

func TestSessionApplyFilters(t *testing.T) {
	fb := &fakeBackend{keywords: []string{"home workouts"}}
	s := NewSession(fb.services(), nil)
	ctx := context.Background()

	require.NoError(t, s.Discover(ctx, "fitness"))
	require.NoError(t, s.SelectKeyword(ctx, "home workouts"))
	base := len(fb.analyzed)

	t.Run("cold only commits once", func(t *testing.T) {
		target := s.Controller().Filters()
		target.ViewRange = filter.ViewRange{Low: 10, High: 60}

		changed, err := s.ApplyFilters(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, []filter.Field{filter.FieldViewRange}, changed)
		assert.Len(t, fb.analyzed, base+1)
		assert.False(t, s.Snapshot().Dirty)
	})

	t.Run("hot and cold together", func(t *testing.T) {
		target := s.Controller().Filters()
		target.TimeWindow = filter.TimeWindowHours
		target.ViewRange = filter.FullViewRange()

		changed, err := s.ApplyFilters(ctx, target)
		require.NoError(t, err)
		assert.ElementsMatch(t, []filter.Field{filter.FieldTimeWindow, filter.FieldViewRange}, changed)
		assert.Equal(t, target, s.Controller().Filters())
		assert.False(t, s.Snapshot().Dirty)

		last := fb.analyzed[len(fb.analyzed)-1]
		assert.Equal(t, int64(10_000_000), last.MaxViewCount)
		assert.Equal(t, filter.TimeWindowHours, last.TimeFilter)
	})

	t.Run("no change", func(t *testing.T) {
		before := len(fb.analyzed)
		changed, err := s.ApplyFilters(ctx, s.Controller().Filters())
		require.NoError(t, err)
		assert.Empty(t, changed)
		assert.Len(t, fb.analyzed, before)
	})

	t.Run("inverted view range is swapped", func(t *testing.T) {
		target := s.Controller().Filters()
		target.ViewRange = filter.ViewRange{Low: 70, High: 30}

		changed, err := s.ApplyFilters(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, []filter.Field{filter.FieldViewRange}, changed)
		assert.Equal(t, filter.ViewRange{Low: 30, High: 70}, s.Controller().Filters().ViewRange)
	})

	t.Run("invalid target", func(t *testing.T) {
		target := s.Controller().Filters()
		target.VideoFormat = "vertical"
		_, err := s.ApplyFilters(ctx, target)
		assert.True(t, filter.IsValidationError(err))
	})
}

func TestSessionApplyFiltersRetriesAfterFailure(t *testing.T) {
	fb := &fakeBackend{keywords: []string{"home workouts"}}
	s := NewSession(fb.services(), nil)
	ctx := context.Background()

	require.NoError(t, s.Discover(ctx, "fitness"))
	require.NoError(t, s.SelectKeyword(ctx, "home workouts"))
	base := len(fb.analyzed)

	target := s.Controller().Filters()
	target.TimeWindow = filter.TimeWindowMonth
	target.VideoFormat = filter.VideoFormatShorts
	target.ViewRange = filter.ViewRange{Low: 20, High: 60}

	fb.analyzeErr = errors.New("backend unavailable")
	changed, err := s.ApplyFilters(ctx, target)
	require.Error(t, err)
	assert.True(t, IsAnalysisFailure(err))
	assert.Len(t, changed, 3)
	assert.Equal(t, target, s.Controller().Filters(), "every field is stored even when the call fails")
	assert.Len(t, fb.analyzed, base+1)

	fb.analyzeErr = nil
	changed, err = s.ApplyFilters(ctx, target)
	require.NoError(t, err)
	assert.Empty(t, changed)
	require.Len(t, fb.analyzed, base+2)
	last := fb.analyzed[base+1]
	assert.Equal(t, filter.TimeWindowMonth, last.TimeFilter)
	assert.Equal(t, filter.VideoFormatShorts, last.VideoType)
	assert.Equal(t, target.ViewRange.MinViews(), last.MinViewCount)
	assert.Nil(t, s.Controller().Notice())

	before := len(fb.analyzed)
	_, err = s.ApplyFilters(ctx, target)
	require.NoError(t, err)
	assert.Len(t, fb.analyzed, before)
}
