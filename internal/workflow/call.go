package workflow

import (
	"context"
	"errors"

	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
)

// Discoverer expands niches into keywords
type Discoverer interface {
	Discover(ctx context.Context, req query.DiscoveryRequest) ([]string, error)
	GenerateViralIdeas(ctx context.Context) ([]string, error)
}

// Analyzer ranks videos for a keyword
type Analyzer interface {
	Analyze(ctx context.Context, req query.AnalysisRequest) ([]video.Record, error)
}

// Services bundles the collaborators a Call may use
type Services struct {
	Discovery Discoverer
	Analysis  Analyzer
}

// CallKind identifies the collaborator operation of a Call
type CallKind int

const (
	CallDiscover CallKind = iota
	CallViralIdeas
	CallAnalyze
)

func (k CallKind) String() string {
	switch k {
	case CallDiscover:
		return "discover"
	case CallViralIdeas:
		return "viral_ideas"
	case CallAnalyze:
		return "analyze"
	default:
		return "unknown"
	}
}

// Trigger records why a call was issued
type Trigger string

const (
	TriggerUser      Trigger = "user"
	TriggerAutoApply Trigger = "auto_apply"
	TriggerCommit    Trigger = "commit"
)

// Call describes one collaborator request issued by the Controller. The shell
// executes it and hands the Result back to Controller.Resolve.
type Call struct {
	Seq       uint64
	Kind      CallKind
	Trigger   Trigger
	Discovery query.DiscoveryRequest
	Analysis  query.AnalysisRequest
}

// Result is the outcome of executing a Call
type Result struct {
	Seq      uint64
	Kind     CallKind
	Keywords []string
	Videos   []video.Record
	Err      error
}

var errNoService = errors.New("collaborator not configured")

// Execute runs the call against svc. It blocks until the collaborator returns.
func (c *Call) Execute(ctx context.Context, svc Services) Result {
	res := Result{Seq: c.Seq, Kind: c.Kind}

	switch c.Kind {
	case CallDiscover:
		if svc.Discovery == nil {
			res.Err = errNoService
			return res
		}
		res.Keywords, res.Err = svc.Discovery.Discover(ctx, c.Discovery)
	case CallViralIdeas:
		if svc.Discovery == nil {
			res.Err = errNoService
			return res
		}
		res.Keywords, res.Err = svc.Discovery.GenerateViralIdeas(ctx)
	case CallAnalyze:
		if svc.Analysis == nil {
			res.Err = errNoService
			return res
		}
		res.Videos, res.Err = svc.Analysis.Analyze(ctx, c.Analysis)
	}

	return res
}
