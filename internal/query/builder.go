// Package query translates the workflow state into backend request payloads.
package query

import (
	"fmt"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/viewrange"
)

// DiscoveryRequest asks the backend to expand a niche into keywords
type DiscoveryRequest struct {
	Niche string `json:"niche"`
}

// AnalysisRequest asks the backend to rank videos for a keyword
type AnalysisRequest struct {
	Keyword           string             `json:"keyword"`
	TimeFilter        filter.TimeWindow  `json:"time_filter"`
	VideoType         filter.VideoFormat `json:"video_type"`
	SmallChannelsOnly bool               `json:"small_channels_only"`
	MinViewCount      int64              `json:"min_view_count"`
	MaxViewCount      int64              `json:"max_view_count"`
}

// BuildDiscoveryRequest builds the discovery payload for a niche
func BuildDiscoveryRequest(niche string) DiscoveryRequest {
	return DiscoveryRequest{Niche: niche}
}

// BuildAnalysisRequest builds the analysis payload from the filters as they
// are at call time. View-count bounds are recomputed on every call.
func BuildAnalysisRequest(keyword string, filters filter.State) AnalysisRequest {
	return AnalysisRequest{
		Keyword:           keyword,
		TimeFilter:        filters.TimeWindow,
		VideoType:         filters.VideoFormat,
		SmallChannelsOnly: filters.SmallChannelsOnly,
		MinViewCount:      viewrange.ToMagnitude(filters.ViewRange.Low),
		MaxViewCount:      viewrange.ToMagnitude(filters.ViewRange.High),
	}
}

// CacheKey returns a stable key covering every field of the request. The
// keyword is used exactly as sent, so requests the backend could answer
// differently never share an entry.
func (r AnalysisRequest) CacheKey() string {
	return fmt.Sprintf("analyze:%q|%s|%s|%t|%d|%d",
		r.Keyword, r.TimeFilter, r.VideoType, r.SmallChannelsOnly, r.MinViewCount, r.MaxViewCount)
}
