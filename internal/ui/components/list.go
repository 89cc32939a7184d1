package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/TrendLens/internal/emoji"
	"github.com/yildizm/TrendLens/internal/present"
)

// Palette holds the colors a component renders with
type Palette struct {
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Selected  lipgloss.TerminalColor
	Success   lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Accent    lipgloss.TerminalColor
}

// DefaultPalette is used when no theme is applied
var DefaultPalette = Palette{
	Primary:   lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"},
	Secondary: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
	Selected:  lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"},
	Success:   lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"},
	Warning:   lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"},
	Error:     lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"},
	Accent:    lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A855F7"},
}

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      string
	Icon        string
}

// List represents a navigable list component
type List struct {
	Title       string
	Items       []ListItem
	Selected    int
	Width       int
	Height      int
	ShowNumbers bool
	ShowIcons   bool
	Palette     Palette
}

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
		ShowIcons:   true,
		Palette:     DefaultPalette,
	}
}

// SetItems sets all items in the list
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Selected = 0
}

// SelectedItem returns the currently selected item
func (l *List) SelectedItem() *ListItem {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Selected]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
	}
}

// Render renders the list
func (l *List) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(l.Palette.Primary).Bold(true)
	normalStyle := lipgloss.NewStyle().Foreground(l.Palette.Secondary)

	content := []string{headerStyle.Render(l.Title), ""}

	if len(l.Items) == 0 {
		content = append(content, normalStyle.Render("(empty)"))
	}

	maxVisible := max(l.Height-4, 1)
	startIndex := 0
	if l.Selected >= maxVisible {
		startIndex = l.Selected - maxVisible + 1
	}
	endIndex := min(startIndex+maxVisible, len(l.Items))

	for i := startIndex; i < endIndex; i++ {
		content = append(content, l.renderItem(&l.Items[i], i+1, i == l.Selected))
	}

	if len(l.Items) > maxVisible {
		scrollInfo := fmt.Sprintf("(%d-%d of %d)", startIndex+1, endIndex, len(l.Items))
		content = append(content, "", normalStyle.Render(scrollInfo))
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	panelStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(l.Palette.Secondary)
	if l.Width > 0 {
		panelStyle = panelStyle.Width(l.Width)
	}
	return panelStyle.Render(joined)
}

// renderItem renders a single list item
func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	var parts []string

	if selected {
		parts = append(parts, ">")
	} else {
		parts = append(parts, " ")
	}
	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}
	if l.ShowIcons && item.Icon != "" {
		parts = append(parts, item.Icon)
	}

	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)

	line := strings.Join(parts, " ")

	var style lipgloss.Style
	if selected {
		style = lipgloss.NewStyle().Background(l.Palette.Selected).Foreground(l.Palette.Primary).Bold(true)
	} else {
		style = lipgloss.NewStyle().Foreground(l.Palette.Secondary)
		switch item.Status {
		case "success":
			style = style.Foreground(l.Palette.Success)
		case "warning":
			style = style.Foreground(l.Palette.Warning)
		case "error":
			style = style.Foreground(l.Palette.Error)
		case "accent":
			style = style.Foreground(l.Palette.Accent)
		}
	}

	if l.Width > 4 {
		style = style.Width(l.Width - 4)
	}
	return style.Render(line)
}

// NewKeywordList creates a list of discovered keywords
func NewKeywordList(title string, keywords []string, width, height int) *List {
	list := NewList(title, width, height)
	items := make([]ListItem, 0, len(keywords))
	for _, kw := range keywords {
		items = append(items, ListItem{ID: kw, Title: kw, Icon: emoji.GetEmoji("keyword")})
	}
	list.SetItems(items)
	return list
}

// NewVideoList creates a list of ranked videos
func NewVideoList(cards []present.Card, width, height int) *List {
	list := NewList(fmt.Sprintf("Top Videos (%d)", len(cards)), width, height)
	list.ShowIcons = true

	items := make([]ListItem, 0, len(cards))
	for _, c := range cards {
		item := ListItem{
			ID:          c.Record.VideoURL,
			Title:       c.Record.Title,
			Description: fmt.Sprintf("%s · %s subs · %s views · %s", c.Record.ChannelName, c.Subscribers, c.Views, c.Age),
			Icon:        emoji.ForTrend(c.TrendClass, !emoji.IsEmojiDisabled()),
		}
		switch {
		case c.Gem:
			item.Icon = emoji.GetEmoji("gem")
			item.Status = "accent"
		case c.Badge.Kind == present.BadgeStrong:
			item.Status = "success"
		}
		if c.Badge.Label != "" {
			item.Description += " · " + c.Badge.Label
		}
		items = append(items, item)
	}
	list.SetItems(items)
	return list
}
