package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/TrendLens/internal/emoji"
	"github.com/yildizm/TrendLens/internal/present"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(color, useEmoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = useEmoji
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) symbol(key string) string {
	return emoji.Lookup(key, f.opts.Emoji)
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, "Trend Analysis: "+report.Keyword)
	f.writeFilters(&b, report)

	if len(report.Cards) == 0 {
		b.WriteString(f.symbol("info") + " No videos match the current filters\n")
		return []byte(b.String()), nil
	}

	f.writeVideos(&b, report.Cards)
	f.writeGemSummary(&b, report.Cards)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) FormatKeywords(report *KeywordReport) ([]byte, error) {
	var b strings.Builder

	title := "Keywords for " + report.Niche
	if report.Niche == "" {
		title = "Viral Ideas"
	}
	f.writeHeader(&b, title)

	b.WriteString(f.symbol("keyword") + " Keywords\n")
	for i, kw := range report.Keywords {
		prefix := "├─"
		if i == len(report.Keywords)-1 {
			prefix = "└─"
		}
		fmt.Fprintf(&b, "%s %d. %s\n", prefix, i+1, kw)
	}
	return []byte(b.String()), nil
}

func (f *terminalFormatter) FormatScan(report *ScanReport) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, "Niche Scan: "+report.Niche)
	fmt.Fprintf(&b, "%s %s\n\n", f.symbol("filters"), filterSummary(report.Filters))

	items := make([]termfmt.TreeItem, 0, len(report.Results))
	for i, res := range report.Results {
		item := termfmt.TreeItem{Label: res.Keyword, Last: i == len(report.Results)-1}
		switch {
		case res.Err != nil:
			item.Value = f.symbol("error") + " " + res.Err.Error()
		default:
			gems := res.Gems(report.TopGems)
			item.Value = fmt.Sprintf("%d videos, %d gems", len(res.Cards), len(present.Gems(res.Cards)))
			for j, g := range gems {
				item.Children = append(item.Children, termfmt.TreeItem{
					Label: f.symbol("gem") + " " + truncate(oneLine(g.Record.Title), maxTitleLen),
					Value: fmt.Sprintf("(%s, %s views)", g.Badge.Label, g.Views),
					Last:  j == len(gems)-1,
				})
			}
		}
		items = append(items, item)
	}

	b.WriteString(f.symbol("statistics") + " Results\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
	return []byte(b.String()), nil
}

// writeHeader writes a header with box drawing
func (f *terminalFormatter) writeHeader(b *strings.Builder, header string) {
	width := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

// writeFilters writes the active filters as a tree
func (f *terminalFormatter) writeFilters(b *strings.Builder, report *Report) {
	b.WriteString(f.symbol("filters") + " Filters\n")

	items := []termfmt.TreeItem{
		{Label: "Published", Value: report.Filters.TimeWindow.Label()},
		{Label: "Format", Value: report.Filters.VideoFormat.Label()},
		{Label: "Views", Value: report.Filters.ViewRange.String()},
		{Label: "Small channels only", Value: yesNo(report.Filters.SmallChannelsOnly), Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeVideos writes one tree entry per ranked video
func (f *terminalFormatter) writeVideos(b *strings.Builder, cards []present.Card) {
	fmt.Fprintf(b, "%s Top Videos (%d)\n", f.symbol("video"), len(cards))

	items := make([]termfmt.TreeItem, 0, len(cards))
	for i, c := range cards {
		label := fmt.Sprintf("%d. %s", i+1, truncate(oneLine(c.Record.Title), maxTitleLen))
		if c.Gem {
			label = f.symbol("gem") + " " + label
		}

		children := []termfmt.TreeItem{
			{Label: "Channel", Value: fmt.Sprintf("%s (%s subs)", c.Record.ChannelName, c.Subscribers)},
			{Label: "Views", Value: c.Views + " · " + c.Age},
			{Label: "Trend", Value: f.trendText(c)},
		}
		if c.Badge.Kind != present.BadgeNone {
			children = append(children, termfmt.TreeItem{Label: "Viral", Value: c.Badge.Label})
		}
		children = append(children, termfmt.TreeItem{Label: "Link", Value: c.Record.VideoURL, Last: true})

		items = append(items, termfmt.TreeItem{
			Label:    label,
			Children: children,
			Last:     i == len(cards)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) trendText(c present.Card) string {
	return emoji.ForTrend(c.TrendClass, f.opts.Emoji) + " " + string(c.Record.EstimatedTrend)
}

// writeGemSummary writes the viral gem count
func (f *terminalFormatter) writeGemSummary(b *strings.Builder, cards []present.Card) {
	gems := present.Gems(cards)
	if len(gems) == 0 {
		return
	}
	fmt.Fprintf(b, "%s %d viral gem(s): small channels with views far above their subscriber count\n",
		f.symbol("target"), len(gems))
}
