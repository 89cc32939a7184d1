package monitor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderText renders the snapshot as a table of operation timings
func (s Snapshot) RenderText() string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("Backend calls (%s total)", round(s.Elapsed)))
	t.AppendHeader(table.Row{"Operation", "Calls", "Errors", "Min", "Avg", "Max", "Total"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	if len(s.Operations) == 0 {
		t.AppendRow(table.Row{"(none)", 0, 0, "-", "-", "-", "-"})
	}
	for _, m := range s.Operations {
		t.AppendRow(table.Row{
			string(m.Operation),
			m.Count,
			m.ErrorCount,
			round(m.MinTime),
			round(m.AvgTime),
			round(m.MaxTime),
			round(m.TotalTime),
		})
	}
	return t.Render() + "\n"
}

// RenderJSON renders the snapshot as indented JSON
func (s Snapshot) RenderJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	return append(data, '\n'), nil
}

func round(d time.Duration) time.Duration {
	switch {
	case d >= time.Second:
		return d.Round(10 * time.Millisecond)
	case d >= time.Millisecond:
		return d.Round(100 * time.Microsecond)
	default:
		return d.Round(time.Microsecond)
	}
}
