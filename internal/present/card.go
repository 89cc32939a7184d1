// Package present derives display fields for ranked videos.
package present

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/TrendLens/internal/video"
)

// Trend classes used for styling
const (
	TrendClassHigh     = "high"
	TrendClassMedium   = "medium"
	TrendClassEmerging = "emerging"
)

// BadgeKind is the strength of the viral score badge
type BadgeKind int

const (
	BadgeNone BadgeKind = iota
	BadgeNormal
	BadgeStrong
)

func (b BadgeKind) String() string {
	switch b {
	case BadgeNormal:
		return "normal"
	case BadgeStrong:
		return "strong"
	default:
		return "none"
	}
}

// ScoreBadge is the rendered viral score
type ScoreBadge struct {
	Kind  BadgeKind `json:"kind"`
	Label string    `json:"label"`
}

// Card is a video with every display field computed
type Card struct {
	Record      video.Record `json:"record"`
	TrendClass  string       `json:"trend_class"`
	Badge       ScoreBadge   `json:"badge"`
	Gem         bool         `json:"gem"`
	Subscribers string       `json:"subscribers"`
	Views       string       `json:"views"`
	Age         string       `json:"age"`
}

// TrendClass maps the backend trend estimate to a style class. Unknown
// values fall back to emerging.
func TrendClass(t video.Trend) string {
	switch t {
	case video.TrendHigh:
		return TrendClassHigh
	case video.TrendMedium:
		return TrendClassMedium
	default:
		return TrendClassEmerging
	}
}

// FormatSubscribers renders a subscriber count with one decimal: 1.5M, 12.3k
func FormatSubscribers(n int64) string {
	if n > 1_000_000 {
		return strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	}
	return strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "k"
}

// FormatViews renders a view count with thousands separators
func FormatViews(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Badge classifies a viral score. Non-positive scores get no badge.
func Badge(score float64) ScoreBadge {
	switch {
	case score <= 0:
		return ScoreBadge{Kind: BadgeNone}
	case score <= 1:
		return ScoreBadge{Kind: BadgeNormal, Label: scoreLabel(score)}
	default:
		return ScoreBadge{Kind: BadgeStrong, Label: scoreLabel(score)}
	}
}

func scoreLabel(score float64) string {
	return fmt.Sprintf("Score: %sx", strconv.FormatFloat(score, 'f', -1, 64))
}

// FormatAge renders days since publication as "Nd"
func FormatAge(days int) string {
	return strconv.Itoa(days) + "d"
}

// Present computes the display card for r
func Present(r video.Record) Card {
	return Card{
		Record:      r,
		TrendClass:  TrendClass(r.EstimatedTrend),
		Badge:       Badge(r.ViralScore),
		Gem:         r.IsViralGem,
		Subscribers: FormatSubscribers(r.SubscriberCount),
		Views:       FormatViews(r.ViewCount),
		Age:         FormatAge(r.PublishedDaysAgo),
	}
}

// PresentAll presents records in order
func PresentAll(records []video.Record) []Card {
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, Present(r))
	}
	return cards
}

// Gems returns the cards flagged as viral gems
func Gems(cards []Card) []Card {
	var gems []Card
	for _, c := range cards {
		if c.Gem {
			gems = append(gems, c)
		}
	}
	return gems
}
