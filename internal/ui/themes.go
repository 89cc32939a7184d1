package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/TrendLens/internal/ui/components"
)

// Theme is the set of colors the TUI draws with
type Theme struct {
	Name string

	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
	Selected  lipgloss.TerminalColor
	Inverse   lipgloss.TerminalColor

	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Info    lipgloss.TerminalColor

	// Gem marks viral gems and strong score badges
	Gem lipgloss.TerminalColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var themes = map[string]Theme{
	"default": {
		Name:      "default",
		Primary:   adaptive("#B91C1C", "#F87171"),
		Secondary: adaptive("#374151", "#D1D5DB"),
		Muted:     adaptive("#6B7280", "#9CA3AF"),
		Border:    adaptive("#D1D5DB", "#374151"),
		Selected:  adaptive("#FEE2E2", "#7F1D1D"),
		Inverse:   adaptive("#FFFFFF", "#111827"),
		Success:   adaptive("#059669", "#34D399"),
		Warning:   adaptive("#D97706", "#FBBF24"),
		Error:     adaptive("#DC2626", "#EF4444"),
		Info:      adaptive("#0E7490", "#22D3EE"),
		Gem:       adaptive("#7C3AED", "#C084FC"),
	},
	"high-contrast": {
		Name:      "high-contrast",
		Primary:   adaptive("#000000", "#FFFFFF"),
		Secondary: adaptive("#333333", "#DDDDDD"),
		Muted:     adaptive("#555555", "#BBBBBB"),
		Border:    adaptive("#000000", "#FFFFFF"),
		Selected:  adaptive("#FFFF00", "#0000AA"),
		Inverse:   adaptive("#FFFFFF", "#000000"),
		Success:   adaptive("#006600", "#00FF00"),
		Warning:   adaptive("#AA5500", "#FFAA00"),
		Error:     adaptive("#CC0000", "#FF5555"),
		Info:      adaptive("#0044AA", "#55AAFF"),
		Gem:       adaptive("#800080", "#FF80FF"),
	},
	"minimal": {
		Name:      "minimal",
		Primary:   adaptive("#1A202C", "#EDF2F7"),
		Secondary: adaptive("#4A5568", "#CBD5E0"),
		Muted:     adaptive("#A0AEC0", "#718096"),
		Border:    adaptive("#E2E8F0", "#2D3748"),
		Selected:  adaptive("#EDF2F7", "#2D3748"),
		Inverse:   adaptive("#FFFFFF", "#1A202C"),
		Success:   adaptive("#2F855A", "#68D391"),
		Warning:   adaptive("#C05621", "#F6AD55"),
		Error:     adaptive("#C53030", "#FC8181"),
		Info:      adaptive("#2B6CB0", "#63B3ED"),
		Gem:       adaptive("#553C9A", "#B794F6"),
	},
}

// MonochromeTheme draws without any color; it is used when color is off
var MonochromeTheme = Theme{
	Name:      "monochrome",
	Primary:   lipgloss.NoColor{},
	Secondary: lipgloss.NoColor{},
	Muted:     lipgloss.NoColor{},
	Border:    lipgloss.NoColor{},
	Selected:  lipgloss.NoColor{},
	Inverse:   lipgloss.NoColor{},
	Success:   lipgloss.NoColor{},
	Warning:   lipgloss.NoColor{},
	Error:     lipgloss.NoColor{},
	Info:      lipgloss.NoColor{},
	Gem:       lipgloss.NoColor{},
}

// ThemeByName looks up a theme; "" selects the default theme
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		name = "default"
	}
	t, ok := themes[name]
	return t, ok
}

// GetAvailableThemes returns the theme names in sorted order
func GetAvailableThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette returns the colors used by list components
func (t Theme) Palette() components.Palette {
	return components.Palette{
		Primary:   t.Primary,
		Secondary: t.Muted,
		Selected:  t.Selected,
		Success:   t.Success,
		Warning:   t.Warning,
		Error:     t.Error,
		Accent:    t.Gem,
	}
}

// Styles are the lipgloss styles derived from a theme
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Muted     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	Box      lipgloss.Style
	Panel    lipgloss.Style
	Progress lipgloss.Style

	Gem           lipgloss.Style
	TrendHigh     lipgloss.Style
	TrendMedium   lipgloss.Style
	TrendEmerging lipgloss.Style
	BadgeNormal   lipgloss.Style
	BadgeStrong   lipgloss.Style
}

// NewStyles builds the styles for theme
func NewStyles(theme Theme) *Styles {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	bold := func(c lipgloss.TerminalColor) lipgloss.Style {
		return fg(c).Bold(true)
	}

	return &Styles{
		Title:     bold(theme.Primary).Padding(0, 1),
		Header:    bold(theme.Primary),
		Subheader: bold(theme.Secondary),
		Muted:     fg(theme.Muted),

		Success: bold(theme.Success),
		Warning: bold(theme.Warning),
		Error:   bold(theme.Error),
		Info:    fg(theme.Info),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Progress: bold(theme.Success),

		Gem:           bold(theme.Gem),
		TrendHigh:     bold(theme.Error),
		TrendMedium:   fg(theme.Warning),
		TrendEmerging: fg(theme.Success),
		BadgeNormal:   fg(theme.Info),
		BadgeStrong: bold(theme.Inverse).
			Background(theme.Gem).
			Padding(0, 1),
	}
}
