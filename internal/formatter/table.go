package formatter

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yildizm/TrendLens/internal/present"
)

// tableFormatter renders results as box-drawn tables
type tableFormatter struct{}

// NewTable creates a new table formatter
func NewTable() Formatter {
	return &tableFormatter{}
}

func newWriter() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	return t
}

func (f *tableFormatter) Format(report *Report) ([]byte, error) {
	t := newWriter()
	t.SetTitle(fmt.Sprintf("%s  (%s)", report.Keyword, filterSummary(report.Filters)))
	t.AppendHeader(table.Row{"#", "Title", "Channel", "Subs", "Views", "Age", "Score", "Trend", "Gem"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	for i, c := range report.Cards {
		t.AppendRow(table.Row{
			i + 1,
			truncate(oneLine(c.Record.Title), 48),
			truncate(c.Record.ChannelName, 24),
			c.Subscribers,
			c.Views,
			c.Age,
			scoreText(c),
			c.Record.EstimatedTrend,
			gemMark(c),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d videos", len(report.Cards)), "", "", "", "", "",
		"gems", len(present.Gems(report.Cards))})

	return []byte(t.Render() + "\n"), nil
}

func (f *tableFormatter) FormatKeywords(report *KeywordReport) ([]byte, error) {
	t := newWriter()
	if report.Niche != "" {
		t.SetTitle("Keywords for " + report.Niche)
	}
	t.AppendHeader(table.Row{"#", "Keyword"})
	for i, kw := range report.Keywords {
		t.AppendRow(table.Row{i + 1, kw})
	}
	return []byte(t.Render() + "\n"), nil
}

func (f *tableFormatter) FormatScan(report *ScanReport) ([]byte, error) {
	t := newWriter()
	t.SetTitle("Niche scan: " + report.Niche)
	t.AppendHeader(table.Row{"Keyword", "Videos", "Gems", "Top Score", "Top Video", "Error"})

	for _, res := range report.Results {
		top, score := "", ""
		if len(res.Cards) > 0 {
			top = truncate(oneLine(res.Cards[0].Record.Title), 40)
			score = strconv.FormatFloat(res.Cards[0].Record.ViralScore, 'f', -1, 64)
		}
		t.AppendRow(table.Row{
			res.Keyword,
			len(res.Cards),
			len(present.Gems(res.Cards)),
			score,
			top,
			truncate(errText(res.Err), 40),
		})
	}
	return []byte(t.Render() + "\n"), nil
}

func gemMark(c present.Card) string {
	if c.Gem {
		return "YES"
	}
	return ""
}
