package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/TrendLens/internal/present"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Trend Analysis: %s\n\n", report.Keyword)
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	}

	f.writeFilters(&b, report)

	b.WriteString("## Videos\n\n")
	if len(report.Cards) == 0 {
		b.WriteString("_No videos match the current filters._\n")
		return []byte(b.String()), nil
	}
	f.writeVideoTable(&b, report.Cards)

	if gems := present.Gems(report.Cards); len(gems) > 0 {
		b.WriteString("\n## Viral Gems\n\n")
		for _, g := range gems {
			fmt.Fprintf(&b, "- [%s](%s) by %s (%s)\n", escapeMarkdown(g.Record.Title), g.Record.VideoURL,
				escapeMarkdown(g.Record.ChannelName), g.Badge.Label)
		}
	}

	return []byte(b.String()), nil
}

func (f *markdownFormatter) FormatKeywords(report *KeywordReport) ([]byte, error) {
	var b strings.Builder
	if report.Niche != "" {
		fmt.Fprintf(&b, "# Keywords for %s\n\n", report.Niche)
	} else {
		b.WriteString("# Viral Ideas\n\n")
	}
	for i, kw := range report.Keywords {
		fmt.Fprintf(&b, "%d. %s\n", i+1, escapeMarkdown(kw))
	}
	return []byte(b.String()), nil
}

func (f *markdownFormatter) FormatScan(report *ScanReport) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Niche Scan: %s\n\n", report.Niche)
	fmt.Fprintf(&b, "Filters: %s\n\n", filterSummary(report.Filters))

	b.WriteString("| Keyword | Videos | Gems | Error |\n")
	b.WriteString("|---------|-------:|-----:|-------|\n")
	for _, res := range report.Results {
		fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", escapeMarkdown(res.Keyword), len(res.Cards),
			len(present.Gems(res.Cards)), escapeMarkdown(errText(res.Err)))
	}

	for _, res := range report.Results {
		gems := res.Gems(report.TopGems)
		if len(gems) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", escapeMarkdown(res.Keyword))
		for _, g := range gems {
			fmt.Fprintf(&b, "- [%s](%s) (%s, %s views)\n", escapeMarkdown(g.Record.Title), g.Record.VideoURL,
				g.Badge.Label, g.Views)
		}
	}
	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeFilters(b *strings.Builder, report *Report) {
	b.WriteString("## Filters\n\n")
	b.WriteString("| Filter | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Published | %s |\n", report.Filters.TimeWindow.Label())
	fmt.Fprintf(b, "| Format | %s |\n", report.Filters.VideoFormat.Label())
	fmt.Fprintf(b, "| Views | %s |\n", report.Filters.ViewRange.String())
	fmt.Fprintf(b, "| Small channels only | %s |\n\n", yesNo(report.Filters.SmallChannelsOnly))
}

func (f *markdownFormatter) writeVideoTable(b *strings.Builder, cards []present.Card) {
	b.WriteString("| # | Title | Channel | Subs | Views | Age | Score | Trend |\n")
	b.WriteString("|--:|-------|---------|-----:|------:|----:|-------|-------|\n")
	for i, c := range cards {
		title := fmt.Sprintf("[%s](%s)", escapeMarkdown(truncate(oneLine(c.Record.Title), maxTitleLen)), c.Record.VideoURL)
		if c.Gem {
			title = "💎 " + title
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
			i+1, title, escapeMarkdown(c.Record.ChannelName), c.Subscribers, c.Views, c.Age,
			scoreText(c), c.Record.EstimatedTrend)
	}
}

// escapeMarkdown keeps user text from breaking table cells and links
func escapeMarkdown(s string) string {
	r := strings.NewReplacer("|", "\\|", "[", "\\[", "]", "\\]", "\n", " ")
	return r.Replace(s)
}
