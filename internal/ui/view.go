package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/TrendLens/internal/emoji"
	"github.com/yildizm/TrendLens/internal/present"
	"github.com/yildizm/TrendLens/internal/viewrange"
	"github.com/yildizm/TrendLens/internal/workflow"
)

const sliderWidth = 40

// View renders the current screen
func (m *Model) View() string {
	if m.quitting {
		return m.styles.Success.Render("Happy creating! "+emoji.GetEmoji("rocket")) + "\n"
	}

	step := m.ctrl.Step()
	m.keys.textActive = step == workflow.StepNicheEntry
	m.keys.filtersOn = step != workflow.StepNicheEntry

	var body string
	switch step {
	case workflow.StepKeywordSelection:
		body = m.renderKeywordScreen()
	case workflow.StepVideoAnalysis:
		body = m.renderAnalysisScreen()
	default:
		body = m.renderNicheScreen()
	}

	sections := []string{m.renderHeader(), body}
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(emoji.GetEmoji("search") + " TrendLens")
	crumbs := []string{"Niche"}
	if m.ctrl.Niche() != "" && m.ctrl.Step() != workflow.StepNicheEntry {
		crumbs = append(crumbs, m.ctrl.Niche())
	}
	if m.ctrl.Step() == workflow.StepVideoAnalysis {
		crumbs = append(crumbs, m.ctrl.SelectedKeyword())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, m.styles.Muted.Render(strings.Join(crumbs, " › "))) + "\n"
}

func (m *Model) renderNicheScreen() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("What niche do you create for?") + "\n\n")
	b.WriteString(m.input.View() + "\n\n")
	if m.ctrl.Loading() {
		b.WriteString(m.spinner.View() + " " + m.loadingText() + "\n")
	} else {
		b.WriteString(m.styles.Muted.Render("enter: discover keywords · tab: random viral ideas") + "\n")
	}
	return m.styles.Box.Render(b.String())
}

func (m *Model) renderKeywordScreen() string {
	parts := []string{m.renderFilters(), m.keywordList.Render()}
	if m.ctrl.Loading() {
		parts = append(parts, m.spinner.View()+" "+m.loadingText())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderAnalysisScreen() string {
	parts := []string{m.renderFilters()}

	switch {
	case m.ctrl.Loading():
		parts = append(parts, m.spinner.View()+" "+m.loadingText())
	case len(m.cards) == 0:
		parts = append(parts, m.styles.Muted.Render("No videos match these filters. Try a wider view range or time window."))
	}
	parts = append(parts, m.videoList.Render())

	if m.videoList.SelectedItem() != nil && m.videoList.Selected < len(m.cards) {
		parts = append(parts, m.renderCard(m.cards[m.videoList.Selected]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderCard renders the details of the highlighted video
func (m *Model) renderCard(c present.Card) string {
	trend := m.trendStyle(c.TrendClass).Render(emoji.ForTrend(c.TrendClass, !emoji.IsEmojiDisabled()) + " " + string(c.Record.EstimatedTrend))

	lines := []string{
		m.styles.Subheader.Render(c.Record.Title),
		fmt.Sprintf("%s · %s subscribers", c.Record.ChannelName, c.Subscribers),
		fmt.Sprintf("%s views · published %s ago · trend %s", c.Views, c.Age, trend),
	}
	switch c.Badge.Kind {
	case present.BadgeStrong:
		lines = append(lines, m.styles.BadgeStrong.Render(c.Badge.Label))
	case present.BadgeNormal:
		lines = append(lines, m.styles.BadgeNormal.Render(c.Badge.Label))
	}
	if c.Gem {
		lines = append(lines, m.styles.Gem.Render(emoji.GetEmoji("gem")+" Viral gem"))
	}
	lines = append(lines, m.styles.Muted.Render(c.Record.VideoURL))
	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

func (m *Model) trendStyle(class string) lipgloss.Style {
	switch class {
	case present.TrendClassHigh:
		return m.styles.TrendHigh
	case present.TrendClassMedium:
		return m.styles.TrendMedium
	default:
		return m.styles.TrendEmerging
	}
}

// renderFilters renders the filter bar; a pending range is marked until committed
func (m *Model) renderFilters() string {
	f := m.ctrl.Filters()

	small := "off"
	if f.SmallChannelsOnly {
		small = "on"
	}
	top := fmt.Sprintf("%s %s   %s %s   %s small channels: %s",
		m.styles.Info.Render("time"), f.TimeWindow.Label(),
		m.styles.Info.Render("format"), f.VideoFormat.Label(),
		emoji.GetEmoji("small_chan"), small)

	rangeLine := fmt.Sprintf("%s %s  %s", m.styles.Info.Render("views"), renderSlider(f.ViewRange.Low, f.ViewRange.High, sliderWidth), f.ViewRange.String())
	if m.ctrl.Dirty() {
		rangeLine += "  " + m.styles.Warning.Render("(press a to apply)")
	}

	return m.styles.Panel.Render(top + "\n" + rangeLine)
}

// renderSlider draws the two handles of the view-range slider
func renderSlider(low, high, width int) string {
	span := viewrange.SliderMax - viewrange.SliderMin
	lo := (low - viewrange.SliderMin) * (width - 1) / span
	hi := (high - viewrange.SliderMin) * (width - 1) / span

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		switch {
		case i == lo || i == hi:
			b.WriteString("●")
		case i > lo && i < hi:
			b.WriteString("━")
		default:
			b.WriteString("─")
		}
	}
	b.WriteByte(']')
	return b.String()
}

func (m *Model) loadingText() string {
	pending := m.ctrl.Snapshot().Pending
	if pending == nil {
		return "Loading..."
	}
	switch pending.Kind {
	case workflow.CallDiscover:
		return "Discovering keywords..."
	case workflow.CallViralIdeas:
		return "Generating viral ideas..."
	default:
		return fmt.Sprintf("Analyzing videos for %q...", pending.Analysis.Keyword)
	}
}

func (m *Model) renderStatus() string {
	if notice := m.ctrl.Notice(); notice != nil {
		return m.styles.Error.Render(emoji.GetEmoji("error")+" "+noticeText(notice)) +
			m.styles.Muted.Render("  (x to dismiss)")
	}
	if m.status != "" {
		return m.styles.Warning.Render(emoji.GetEmoji("warning") + " " + m.status)
	}
	return ""
}

func noticeText(err error) string {
	var f *workflow.Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
