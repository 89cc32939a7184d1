package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Enter      key.Binding
	Ideas      key.Binding
	Back       key.Binding
	Reset      key.Binding
	TimeNext   key.Binding
	TimePrev   key.Binding
	Format     key.Binding
	Small      key.Binding
	LowDown    key.Binding
	LowUp      key.Binding
	HighDown   key.Binding
	HighUp     key.Binding
	Commit     key.Binding
	Dismiss    key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	filtersOn  bool
	textActive bool
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Ideas: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "viral ideas"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Reset: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new niche"),
		),
		TimeNext: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t/T", "time window"),
		),
		TimePrev: key.NewBinding(
			key.WithKeys("T"),
		),
		Format: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "format"),
		),
		Small: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "small channels"),
		),
		LowDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[/]", "min views"),
		),
		LowUp: key.NewBinding(
			key.WithKeys("]"),
		),
		HighDown: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{/}", "max views"),
		),
		HighUp: key.NewBinding(
			key.WithKeys("}"),
		),
		Commit: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply range"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss error"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.textActive {
		return []key.Binding{k.Enter, k.Ideas, k.ForceQuit}
	}
	if k.filtersOn {
		return []key.Binding{k.Enter, k.Back, k.TimeNext, k.Format, k.Small, k.LowDown, k.HighDown, k.Commit, k.Help, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	if k.textActive {
		return [][]key.Binding{{k.Enter, k.Ideas, k.ForceQuit}}
	}
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back, k.Reset},
		{k.TimeNext, k.Format, k.Small},
		{k.LowDown, k.HighDown, k.Commit},
		{k.Dismiss, k.Help, k.Quit},
	}
}

var _ help.KeyMap = keyMap{}
