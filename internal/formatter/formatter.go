package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/present"
	"github.com/yildizm/TrendLens/internal/query"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
	FormatKeywords(report *KeywordReport) ([]byte, error)
	FormatScan(report *ScanReport) ([]byte, error)
}

// Report is the result of one video analysis
type Report struct {
	Niche       string
	Keyword     string
	Filters     filter.State
	Request     query.AnalysisRequest
	Cards       []present.Card
	GeneratedAt time.Time
}

// KeywordReport is a discovered keyword set
type KeywordReport struct {
	Niche    string
	Keywords []string
}

// ScanResult is the analysis of one keyword within a scan
type ScanResult struct {
	Keyword string
	Cards   []present.Card
	Err     error
}

// Gems returns at most limit viral gems; limit <= 0 means all
func (r ScanResult) Gems(limit int) []present.Card {
	gems := present.Gems(r.Cards)
	if limit > 0 && len(gems) > limit {
		gems = gems[:limit]
	}
	return gems
}

// ScanReport is the analysis of every keyword of a niche
type ScanReport struct {
	Niche   string
	Filters filter.State
	Results []ScanResult
	TopGems int
}

// Formats lists the supported output formats
var Formats = []string{"text", "table", "json", "markdown", "csv"}

// New creates the formatter for format
func New(format string, color, emoji bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTerminal(color, emoji), nil
	case "table":
		return NewTable(), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
}
