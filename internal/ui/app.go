// Package ui implements the interactive terminal interface. It drives a
// workflow.Controller: every key press becomes a controller operation, and any
// call the controller returns runs as a tea.Cmd whose result is fed back
// through Resolve.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/present"
	"github.com/yildizm/TrendLens/internal/ui/components"
	"github.com/yildizm/TrendLens/internal/viewrange"
	"github.com/yildizm/TrendLens/internal/workflow"
)

// rangeStep is how far one key press moves a view-range handle
const rangeStep = 5

// Options configures the TUI
type Options struct {
	Theme string
	// Monochrome draws without color while still validating Theme
	Monochrome bool
	Controller *workflow.Controller
	Logger     *logger.Logger
}

// Model is the bubbletea model of the TUI
type Model struct {
	ctx  context.Context
	ctrl *workflow.Controller
	svc  workflow.Services
	log  *logger.Logger

	styles  *Styles
	palette components.Palette
	keys    keyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model
	// spinning is set while a tick loop is running
	spinning bool

	keywordList *components.List
	videoList   *components.List
	cards       []present.Card

	status   string
	showHelp bool
	width    int
	height   int
	quitting bool
}

// NewModel creates the TUI model
func NewModel(ctx context.Context, svc workflow.Services, opts Options) (*Model, error) {
	theme, ok := ThemeByName(opts.Theme)
	if !ok {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", opts.Theme, GetAvailableThemes())
	}
	if opts.Monochrome {
		theme = MonochromeTheme
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = workflow.New(workflow.WithLogger(log))
	}

	input := textinput.New()
	input.Placeholder = "e.g. fitness, personal finance, retro gaming"
	input.CharLimit = 120
	input.Prompt = "› "
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = NewStyles(theme).Progress

	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		svc:     svc,
		log:     log.WithComponent("ui"),
		styles:  NewStyles(theme),
		palette: theme.Palette(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		input:   input,
		spinner: sp,
		width:   80,
		height:  24,
	}
	m.syncLists()
	return m, nil
}

// Controller returns the workflow controller driven by the model
func (m *Model) Controller() *workflow.Controller {
	return m.ctrl
}

// Init starts the cursor blinking
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.syncLists()
		return m, nil
	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case callResultMsg:
		return m.handleResult(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.ctrl.Step() == workflow.StepNicheEntry {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleResult(msg callResultMsg) (tea.Model, tea.Cmd) {
	outcome := m.ctrl.Resolve(msg.result)
	if !m.ctrl.Loading() {
		m.spinning = false
	}
	m.log.DebugWithFields("call resolved", []logger.Field{
		logger.Seq(msg.result.Seq),
		logger.F("kind", msg.result.Kind.String()),
		logger.F("outcome", outcome.String()),
		logger.Duration(msg.duration),
	})

	if outcome == workflow.OutcomeCommitted {
		m.status = ""
		m.syncLists()
		if m.ctrl.Step() != workflow.StepNicheEntry {
			m.input.Blur()
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.ctrl.Step() == workflow.StepNicheEntry {
		return m.handleNicheKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.DismissNotice()
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Back()
		m.status = ""
		if m.ctrl.Step() == workflow.StepNicheEntry {
			m.input.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
		m.status = ""
		m.input.SetValue("")
		m.input.Focus()
		m.syncLists()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.activeList().MoveUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.activeList().MoveDown()
		return m, nil
	}

	if call, handled, err := m.handleFilterKey(msg); handled {
		return m, m.afterOperation(call, err)
	}

	if key.Matches(msg, m.keys.Enter) {
		switch m.ctrl.Step() {
		case workflow.StepKeywordSelection:
			item := m.keywordList.SelectedItem()
			if item == nil {
				return m, nil
			}
			call, err := m.ctrl.SelectKeyword(item.ID)
			return m, m.afterOperation(call, err)
		case workflow.StepVideoAnalysis:
			return m, m.afterOperation(m.ctrl.CommitFilters(), nil)
		}
	}
	return m, nil
}

func (m *Model) handleNicheKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		call, err := m.ctrl.Discover(m.input.Value())
		return m, m.afterOperation(call, err)
	case key.Matches(msg, m.keys.Ideas):
		call, err := m.ctrl.GenerateViralIdeas()
		return m, m.afterOperation(call, err)
	case msg.Type == tea.KeyEsc:
		// esc at the first step returns to keywords from a previous search
		if err := m.ctrl.Resume(); err == nil {
			m.input.Blur()
			m.syncLists()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleFilterKey applies a filter key; handled is false for other keys
func (m *Model) handleFilterKey(msg tea.KeyMsg) (*workflow.Call, bool, error) {
	f := m.ctrl.Filters()
	r := f.ViewRange

	switch {
	case key.Matches(msg, m.keys.TimeNext):
		call, err := m.ctrl.SetTimeWindow(filter.NextTimeWindow(f.TimeWindow, 1))
		return call, true, err
	case key.Matches(msg, m.keys.TimePrev):
		call, err := m.ctrl.SetTimeWindow(filter.NextTimeWindow(f.TimeWindow, -1))
		return call, true, err
	case key.Matches(msg, m.keys.Format):
		call, err := m.ctrl.SetVideoFormat(filter.NextVideoFormat(f.VideoFormat, 1))
		return call, true, err
	case key.Matches(msg, m.keys.Small):
		return m.ctrl.ToggleSmallChannels(), true, nil
	case key.Matches(msg, m.keys.LowDown):
		call, err := m.ctrl.SetViewRange(max(r.Low-rangeStep, viewrange.SliderMin), r.High)
		return call, true, err
	case key.Matches(msg, m.keys.LowUp):
		call, err := m.ctrl.SetViewRange(min(r.Low+rangeStep, r.High), r.High)
		return call, true, err
	case key.Matches(msg, m.keys.HighDown):
		call, err := m.ctrl.SetViewRange(r.Low, max(r.High-rangeStep, r.Low))
		return call, true, err
	case key.Matches(msg, m.keys.HighUp):
		call, err := m.ctrl.SetViewRange(r.Low, min(r.High+rangeStep, viewrange.SliderMax))
		return call, true, err
	case key.Matches(msg, m.keys.Commit):
		return m.ctrl.CommitFilters(), true, nil
	}
	return nil, false, nil
}

// afterOperation reports guard errors and schedules the returned call
func (m *Model) afterOperation(call *workflow.Call, err error) tea.Cmd {
	if err != nil {
		m.status = guardMessage(err)
		return nil
	}
	m.status = ""
	if call == nil {
		return nil
	}

	m.log.DebugWithFields("issuing call", []logger.Field{
		logger.Seq(call.Seq),
		logger.F("kind", call.Kind.String()),
		logger.F("trigger", string(call.Trigger)),
	})
	run := executeCall(m.ctx, m.svc, call)
	if m.spinning {
		return run
	}
	m.spinning = true
	return tea.Batch(run, m.spinner.Tick)
}

func guardMessage(err error) string {
	switch {
	case errors.Is(err, workflow.ErrEmptyNiche):
		return "Enter a niche first"
	case errors.Is(err, workflow.ErrBusy):
		return "Still loading, please wait"
	default:
		return err.Error()
	}
}

func (m *Model) activeList() *components.List {
	if m.ctrl.Step() == workflow.StepVideoAnalysis {
		return m.videoList
	}
	return m.keywordList
}

// syncLists rebuilds the list components from the controller state, keeping
// the selection where possible
func (m *Model) syncLists() {
	listWidth := max(m.width-4, 20)
	listHeight := max(m.height-12, 6)

	title := "Keywords for " + m.ctrl.Niche()
	if m.ctrl.Niche() == workflow.ViralIdeasLabel {
		title = workflow.ViralIdeasLabel
	}
	selected := 0
	if m.keywordList != nil {
		selected = m.keywordList.Selected
	}
	m.keywordList = components.NewKeywordList(title, m.ctrl.Keywords(), listWidth, listHeight)
	m.keywordList.Palette = m.palette
	if selected < len(m.keywordList.Items) {
		m.keywordList.Selected = selected
	}

	m.cards = present.PresentAll(m.ctrl.Videos())
	m.videoList = components.NewVideoList(m.cards, listWidth, listHeight)
	m.videoList.Palette = m.palette
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, svc workflow.Services, opts Options) error {
	m, err := NewModel(ctx, svc, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
