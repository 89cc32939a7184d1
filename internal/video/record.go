// Package video defines the records returned by the analysis backend.
package video

// Trend is the backend's estimate of a video's momentum
type Trend string

const (
	TrendHigh     Trend = "alta"
	TrendMedium   Trend = "media"
	TrendEmerging Trend = "emergente"
)

// Record is one ranked video. Records are treated as immutable once received.
type Record struct {
	VideoID          string  `json:"video_id,omitempty"`
	Title            string  `json:"title"`
	ThumbnailURL     string  `json:"thumbnail"`
	VideoURL         string  `json:"video_url"`
	ChannelName      string  `json:"channel"`
	ChannelID        string  `json:"channel_id,omitempty"`
	SubscriberCount  int64   `json:"subscriber_count"`
	ViewCount        int64   `json:"view_count"`
	PublishedDaysAgo int     `json:"published_days_ago"`
	EstimatedTrend   Trend   `json:"estimated_trend"`
	ViralScore       float64 `json:"viral_score"`
	IsViralGem       bool    `json:"is_viral_gem"`
}

// Clone returns a copy of records so callers cannot alias internal slices
func Clone(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
