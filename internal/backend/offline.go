package backend

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
)

const (
	offlinePoolSize    = 24
	maxResults         = 15
	smallChannelLimit  = 1_000_000
	viralGemThreshold  = 10
	mediumTrendScore   = 2
	offlineThumbnail   = "https://via.placeholder.com/480x360"
	offlineWatchPrefix = "https://www.youtube.com/watch?v="
)

var offlineKeywordPatterns = []string{
	"%s trends",
	"%s secrets",
	"%s for beginners",
	"evolution of %s",
	"%s on a budget",
	"future of %s",
}

var offlineViralIdeas = []string{
	"Unsolved mysteries",
	"Cheap tech gadgets",
	"Shocking social experiments",
	"True horror stories",
	"Giant food challenges",
	"Extreme body transformations",
	"Millionaire habits",
}

// maxDaysByWindow is the oldest publication age each time window admits
var maxDaysByWindow = map[filter.TimeWindow]int{
	filter.TimeWindowHours:   1,
	filter.TimeWindow3Days:   3,
	filter.TimeWindow7Days:   7,
	filter.TimeWindowMonth:   30,
	filter.TimeWindow3Months: 90,
	filter.TimeWindow7Months: 210,
}

// Offline serves deterministic sample data without any network access. The
// same request always yields the same videos.
type Offline struct{}

// NewOffline creates the offline provider
func NewOffline() *Offline {
	return &Offline{}
}

// Name returns the provider name
func (o *Offline) Name() string {
	return "offline"
}

// Discover derives keywords from the niche; the niche itself comes first
func (o *Offline) Discover(ctx context.Context, req query.DiscoveryRequest) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	niche := strings.TrimSpace(req.Niche)
	keywords := make([]string, 0, len(offlineKeywordPatterns)+1)
	keywords = append(keywords, niche)
	for _, p := range offlineKeywordPatterns {
		keywords = append(keywords, fmt.Sprintf(p, niche))
	}
	return keywords, nil
}

// GenerateViralIdeas returns a fixed list of seven ideas
func (o *Offline) GenerateViralIdeas(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]string(nil), offlineViralIdeas...), nil
}

// Analyze filters and ranks a generated video pool for the keyword
func (o *Offline) Analyze(ctx context.Context, req query.AnalysisRequest) ([]video.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxDays, ok := maxDaysByWindow[req.TimeFilter]
	if !ok {
		maxDays = maxDaysByWindow[filter.TimeWindow7Days]
	}

	var results []video.Record
	for _, c := range offlinePool(req.Keyword) {
		switch {
		case c.record.PublishedDaysAgo > maxDays:
			continue
		case req.VideoType == filter.VideoFormatShorts && !c.short:
			continue
		case req.VideoType == filter.VideoFormatNormal && c.short:
			continue
		case c.record.ViewCount < req.MinViewCount || c.record.ViewCount > req.MaxViewCount:
			continue
		case req.SmallChannelsOnly && c.record.SubscriberCount > smallChannelLimit:
			continue
		}
		results = append(results, c.record)
	}

	RankVideos(results)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// HealthCheck always succeeds
func (o *Offline) HealthCheck(context.Context) error {
	return nil
}

// RankVideos orders videos by viral score, then views, both descending
func RankVideos(videos []video.Record) {
	sort.SliceStable(videos, func(i, j int) bool {
		if videos[i].ViralScore != videos[j].ViralScore {
			return videos[i].ViralScore > videos[j].ViralScore
		}
		return videos[i].ViewCount > videos[j].ViewCount
	})
}

// ViralScore is views per subscriber rounded to two decimals
func ViralScore(views, subscribers int64) float64 {
	if subscribers <= 0 {
		subscribers = 1
	}
	return math.Round(float64(views)/float64(subscribers)*100) / 100
}

type candidate struct {
	record video.Record
	short  bool
}

func offlinePool(keyword string) []candidate {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(keyword))))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	pool := make([]candidate, 0, offlinePoolSize)
	for i := 0; i < offlinePoolSize; i++ {
		// log-uniform counts so every slider region has videos
		views := int64(math.Exp(math.Log(500) + rng.Float64()*(math.Log(20_000_000)-math.Log(500))))
		subs := int64(math.Exp(math.Log(100) + rng.Float64()*(math.Log(5_000_000)-math.Log(100))))
		score := ViralScore(views, subs)

		id := fmt.Sprintf("offline_%x_%d", seed&0xffff, i)
		pool = append(pool, candidate{
			short: rng.IntN(3) == 0,
			record: video.Record{
				VideoID:          id,
				Title:            fmt.Sprintf("Viral video about %s #%d", keyword, i+1),
				ThumbnailURL:     offlineThumbnail,
				VideoURL:         offlineWatchPrefix + id,
				ChannelName:      fmt.Sprintf("Creator %d", rng.IntN(90)+10),
				ChannelID:        fmt.Sprintf("channel_%d", i),
				SubscriberCount:  subs,
				ViewCount:        views,
				PublishedDaysAgo: offlineAge(rng),
				EstimatedTrend:   trendFor(score),
				ViralScore:       score,
				IsViralGem:       score > viralGemThreshold,
			},
		})
	}
	return pool
}

// offlineAge spreads publication ages so each time window has some videos
func offlineAge(rng *rand.Rand) int {
	buckets := []int{1, 3, 7, 30, 90, 210}
	limit := buckets[rng.IntN(len(buckets))]
	return rng.IntN(limit + 1)
}

func trendFor(score float64) video.Trend {
	switch {
	case score > viralGemThreshold:
		return video.TrendHigh
	case score > mediumTrendScore:
		return video.TrendMedium
	default:
		return video.TrendEmerging
	}
}
