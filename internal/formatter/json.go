package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/present"
	"github.com/yildizm/TrendLens/internal/query"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// AnalysisOutput is the JSON document for an analysis
type AnalysisOutput struct {
	Niche       string                `json:"niche,omitempty"`
	Keyword     string                `json:"keyword"`
	Filters     filter.State          `json:"filters"`
	Request     query.AnalysisRequest `json:"request"`
	Summary     SummaryOutput         `json:"summary"`
	Videos      []VideoOutput         `json:"videos"`
	GeneratedAt *time.Time            `json:"generated_at,omitempty"`
}

// SummaryOutput counts the results
type SummaryOutput struct {
	Videos    int     `json:"videos"`
	ViralGems int     `json:"viral_gems"`
	TopScore  float64 `json:"top_score"`
}

// VideoOutput is a video with its display fields
type VideoOutput struct {
	Rank        int           `json:"rank"`
	Title       string        `json:"title"`
	Channel     string        `json:"channel"`
	URL         string        `json:"video_url"`
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Subscribers int64         `json:"subscriber_count"`
	Views       int64         `json:"view_count"`
	DaysAgo     int           `json:"published_days_ago"`
	ViralScore  float64       `json:"viral_score"`
	Gem         bool          `json:"is_viral_gem"`
	Trend       string        `json:"estimated_trend"`
	Display     DisplayOutput `json:"display"`
}

// DisplayOutput carries the formatted strings shown to users
type DisplayOutput struct {
	Subscribers string `json:"subscribers"`
	Views       string `json:"views"`
	Age         string `json:"age"`
	TrendClass  string `json:"trend_class"`
	Badge       string `json:"badge"`
	BadgeKind   string `json:"badge_kind"`
}

// ScanOutput is the JSON document for a niche scan
type ScanOutput struct {
	Niche   string             `json:"niche"`
	Filters filter.State       `json:"filters"`
	Results []ScanResultOutput `json:"results"`
}

// ScanResultOutput is one scanned keyword
type ScanResultOutput struct {
	Keyword   string        `json:"keyword"`
	Videos    int           `json:"videos"`
	ViralGems []VideoOutput `json:"viral_gems"`
	Error     string        `json:"error,omitempty"`
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	out := AnalysisOutput{
		Niche:   report.Niche,
		Keyword: report.Keyword,
		Filters: report.Filters,
		Request: report.Request,
		Summary: summarize(report.Cards),
		Videos:  videoOutputs(report.Cards),
	}
	if !report.GeneratedAt.IsZero() {
		at := report.GeneratedAt.UTC()
		out.GeneratedAt = &at
	}
	return json.MarshalIndent(out, "", "  ")
}

func (f *jsonFormatter) FormatKeywords(report *KeywordReport) ([]byte, error) {
	keywords := report.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return json.MarshalIndent(struct {
		Niche    string   `json:"niche,omitempty"`
		Keywords []string `json:"keywords"`
	}{report.Niche, keywords}, "", "  ")
}

func (f *jsonFormatter) FormatScan(report *ScanReport) ([]byte, error) {
	out := ScanOutput{
		Niche:   report.Niche,
		Filters: report.Filters,
		Results: make([]ScanResultOutput, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		out.Results = append(out.Results, ScanResultOutput{
			Keyword:   res.Keyword,
			Videos:    len(res.Cards),
			ViralGems: videoOutputs(res.Gems(report.TopGems)),
			Error:     errText(res.Err),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func summarize(cards []present.Card) SummaryOutput {
	s := SummaryOutput{Videos: len(cards), ViralGems: len(present.Gems(cards))}
	for _, c := range cards {
		if c.Record.ViralScore > s.TopScore {
			s.TopScore = c.Record.ViralScore
		}
	}
	return s
}

func videoOutputs(cards []present.Card) []VideoOutput {
	out := make([]VideoOutput, 0, len(cards))
	for i, c := range cards {
		out = append(out, VideoOutput{
			Rank:        i + 1,
			Title:       c.Record.Title,
			Channel:     c.Record.ChannelName,
			URL:         c.Record.VideoURL,
			Thumbnail:   c.Record.ThumbnailURL,
			Subscribers: c.Record.SubscriberCount,
			Views:       c.Record.ViewCount,
			DaysAgo:     c.Record.PublishedDaysAgo,
			ViralScore:  c.Record.ViralScore,
			Gem:         c.Gem,
			Trend:       string(c.Record.EstimatedTrend),
			Display: DisplayOutput{
				Subscribers: c.Subscribers,
				Views:       c.Views,
				Age:         c.Age,
				TrendClass:  c.TrendClass,
				Badge:       c.Badge.Label,
				BadgeKind:   c.Badge.Kind.String(),
			},
		})
	}
	return out
}
