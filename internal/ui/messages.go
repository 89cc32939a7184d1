package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/TrendLens/internal/workflow"
)

// callResultMsg carries the result of a workflow call back into Update. The
// result's sequence number decides whether it still applies.
type callResultMsg struct {
	result   workflow.Result
	duration time.Duration
}

// executeCall creates a tea command that runs call against svc
func executeCall(ctx context.Context, svc workflow.Services, call *workflow.Call) tea.Cmd {
	if call == nil {
		return nil
	}
	return func() tea.Msg {
		start := time.Now()
		res := call.Execute(ctx, svc)
		return callResultMsg{result: res, duration: time.Since(start)}
	}
}
