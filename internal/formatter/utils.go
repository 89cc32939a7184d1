package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/present"
)

const maxTitleLen = 60

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// oneLine removes line breaks so a value fits in a table cell
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// scoreText is the badge label, or "-" when the score earns no badge
func scoreText(c present.Card) string {
	if c.Badge.Kind == present.BadgeNone {
		return "-"
	}
	return c.Badge.Label
}

// filterSummary renders the filters on one line
func filterSummary(s filter.State) string {
	parts := []string{
		s.TimeWindow.Label(),
		s.VideoFormat.Label(),
		"views " + s.ViewRange.String(),
	}
	if s.SmallChannelsOnly {
		parts = append(parts, "small channels only")
	}
	return strings.Join(parts, " · ")
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
