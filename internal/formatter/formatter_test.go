package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/present"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
)

func sampleCards() []present.Card {
	return present.PresentAll([]video.Record{
		{
			Title:            "20 min workout | no equipment",
			ChannelName:      "Small Gym",
			VideoURL:         "https://www.youtube.com/watch?v=abc",
			SubscriberCount:  4_000,
			ViewCount:        52_000,
			PublishedDaysAgo: 2,
			EstimatedTrend:   video.TrendHigh,
			ViralScore:       13,
			IsViralGem:       true,
		},
		{
			Title:            "Budget gym tour",
			ChannelName:      "Big Channel",
			VideoURL:         "https://www.youtube.com/watch?v=def",
			SubscriberCount:  2_500_000,
			ViewCount:        1_200_000,
			PublishedDaysAgo: 5,
			EstimatedTrend:   video.TrendEmerging,
			ViralScore:       0.48,
		},
	})
}

func sampleReport() *Report {
	filters := filter.Default().WithSmallChannelsOnly(true)
	return &Report{
		Niche:       "fitness",
		Keyword:     "home workouts",
		Filters:     filters,
		Request:     query.BuildAnalysisRequest("home workouts", filters),
		Cards:       sampleCards(),
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func sampleScan() *ScanReport {
	return &ScanReport{
		Niche:   "fitness",
		Filters: filter.Default(),
		TopGems: 1,
		Results: []ScanResult{
			{Keyword: "home workouts", Cards: sampleCards()},
			{Keyword: "budget gym", Err: errors.New("backend unavailable")},
		},
	}
}

func TestNew(t *testing.T) {
	for _, format := range append(Formats, "", "md", "JSON") {
		f, err := New(format, false, false)
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := New("xml", false, false)
	assert.Error(t, err)
}

func TestFormattersHandleEveryReport(t *testing.T) {
	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			f, err := New(format, false, true)
			require.NoError(t, err)

			out, err := f.Format(sampleReport())
			require.NoError(t, err)
			assert.Contains(t, string(out), "Small Gym")

			out, err = f.Format(&Report{Keyword: "nothing", Filters: filter.Default()})
			require.NoError(t, err)
			assert.NotEmpty(t, out)

			out, err = f.FormatKeywords(&KeywordReport{Niche: "fitness", Keywords: []string{"fitness", "home workouts"}})
			require.NoError(t, err)
			assert.Contains(t, string(out), "home workouts")

			out, err = f.FormatScan(sampleScan())
			require.NoError(t, err)
			assert.Contains(t, string(out), "home workouts")
		})
	}
}

func TestTerminalFormat(t *testing.T) {
	out, err := NewTerminal(false, false).Format(sampleReport())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "Trend Analysis: home workouts")
	assert.Contains(t, s, "[GEM]")
	assert.Contains(t, s, "4.0k subs")
	assert.Contains(t, s, "52,000")
	assert.Contains(t, s, "Score: 13x")
	assert.Contains(t, s, "[HIGH] alta")
	assert.Contains(t, s, "1 viral gem(s)")
	assert.NotContains(t, s, "💎")
	assert.Less(t, strings.Index(s, "20 min workout"), strings.Index(s, "Budget gym tour"))
}

func TestTerminalFormatEmpty(t *testing.T) {
	out, err := NewTerminal(false, false).Format(&Report{Keyword: "x", Filters: filter.Default()})
	require.NoError(t, err)
	assert.Contains(t, string(out), "No videos match the current filters")
}

func TestTerminalKeywords(t *testing.T) {
	out, err := NewTerminal(false, true).FormatKeywords(&KeywordReport{Keywords: []string{"a", "b"}})
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "Viral Ideas")
	assert.Contains(t, s, "├─ 1. a")
	assert.Contains(t, s, "└─ 2. b")
}

func TestTerminalScan(t *testing.T) {
	out, err := NewTerminal(false, false).FormatScan(sampleScan())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "2 videos, 1 gems")
	assert.Contains(t, s, "backend unavailable")
}

func TestJSONFormat(t *testing.T) {
	out, err := NewJSON().Format(sampleReport())
	require.NoError(t, err)

	var doc AnalysisOutput
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "home workouts", doc.Keyword)
	assert.Equal(t, SummaryOutput{Videos: 2, ViralGems: 1, TopScore: 13}, doc.Summary)
	require.Len(t, doc.Videos, 2)
	assert.Equal(t, 1, doc.Videos[0].Rank)
	assert.Equal(t, "strong", doc.Videos[0].Display.BadgeKind)
	assert.Equal(t, "normal", doc.Videos[1].Display.BadgeKind)
	assert.True(t, doc.Request.SmallChannelsOnly)
	require.NotNil(t, doc.GeneratedAt)
}

func TestJSONKeywordsNeverNull(t *testing.T) {
	out, err := NewJSON().FormatKeywords(&KeywordReport{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"keywords":[]}`, string(out))
}

func TestJSONScan(t *testing.T) {
	out, err := NewJSON().FormatScan(sampleScan())
	require.NoError(t, err)

	var doc ScanOutput
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.Results, 2)
	assert.Len(t, doc.Results[0].ViralGems, 1)
	assert.Equal(t, "backend unavailable", doc.Results[1].Error)
}

func TestMarkdownEscapesCells(t *testing.T) {
	out, err := NewMarkdown().Format(sampleReport())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "# Trend Analysis: home workouts")
	assert.Contains(t, s, "Generated: 2026-03-01 12:00:00")
	assert.Contains(t, s, `20 min workout \| no equipment`)
	assert.Contains(t, s, "## Viral Gems")
}

func TestCSVFormat(t *testing.T) {
	out, err := NewCSV().Format(sampleReport())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, videoHeaders, rows[0])
	assert.Equal(t, []string{"1", "home workouts", "20 min workout | no equipment", "Small Gym",
		"4000", "52000", "2", "13", "true", "alta", "https://www.youtube.com/watch?v=abc"}, rows[1])
}

func TestCSVScanSkipsFailures(t *testing.T) {
	out, err := NewCSV().FormatScan(sampleScan())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "home workouts", rows[1][1])
}

func TestTableFormat(t *testing.T) {
	out, err := NewTable().Format(sampleReport())
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "TITLE")
	assert.Contains(t, s, "Score: 13x")
	assert.Contains(t, s, "YES")
	assert.Contains(t, strings.ToLower(s), "2 videos")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijkl", 10))
	assert.Equal(t, "ñññ...", truncate("ñññññññ", 6))
}
