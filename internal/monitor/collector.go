// Package monitor records how often backend operations run and how long they
// take, so a command can report where its time went.
package monitor

import (
	"context"
	"time"

	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
	"github.com/yildizm/TrendLens/internal/workflow"
)

// Collector tracks one Timer per operation. It is safe for concurrent use.
type Collector struct {
	timers  map[Operation]*Timer
	started time.Time
	now     func() time.Time
}

// NewCollector creates a collector with empty timers
func NewCollector() *Collector {
	c := &Collector{
		timers: make(map[Operation]*Timer, len(Operations())),
		now:    time.Now,
	}
	for _, op := range Operations() {
		c.timers[op] = NewTimer()
	}
	c.started = c.now()
	return c
}

// Track times fn as one run of op
func (c *Collector) Track(op Operation, fn func() error) error {
	start := c.now()
	err := fn()
	c.timers[op].Record(c.now().Sub(start), err != nil)
	return err
}

// Snapshot returns the metrics of every operation that ran at least once
func (c *Collector) Snapshot() Snapshot {
	s := Snapshot{Elapsed: c.now().Sub(c.started)}
	for _, op := range Operations() {
		if m := c.timers[op].Metrics(op); m.Count > 0 {
			s.Operations = append(s.Operations, m)
		}
	}
	return s
}

// Snapshot is a point-in-time view of a collector
type Snapshot struct {
	Elapsed    time.Duration      `json:"elapsed_ns"`
	Operations []OperationMetrics `json:"operations"`
}

// Instrument wraps the collaborators of svc so every call is tracked
func (c *Collector) Instrument(svc workflow.Services) workflow.Services {
	out := svc
	if svc.Discovery != nil {
		out.Discovery = &trackedDiscoverer{next: svc.Discovery, c: c}
	}
	if svc.Analysis != nil {
		out.Analysis = &trackedAnalyzer{next: svc.Analysis, c: c}
	}
	return out
}

type trackedDiscoverer struct {
	next workflow.Discoverer
	c    *Collector
}

func (d *trackedDiscoverer) Discover(ctx context.Context, req query.DiscoveryRequest) (keywords []string, err error) {
	err = d.c.Track(OperationDiscover, func() error {
		keywords, err = d.next.Discover(ctx, req)
		return err
	})
	return keywords, err
}

func (d *trackedDiscoverer) GenerateViralIdeas(ctx context.Context) (ideas []string, err error) {
	err = d.c.Track(OperationViralIdeas, func() error {
		ideas, err = d.next.GenerateViralIdeas(ctx)
		return err
	})
	return ideas, err
}

type trackedAnalyzer struct {
	next workflow.Analyzer
	c    *Collector
}

func (a *trackedAnalyzer) Analyze(ctx context.Context, req query.AnalysisRequest) (videos []video.Record, err error) {
	err = a.c.Track(OperationAnalyze, func() error {
		videos, err = a.next.Analyze(ctx, req)
		return err
	})
	return videos, err
}
