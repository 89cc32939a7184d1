package workflow

import (
	"context"
	"time"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/logger"
)

// Session drives a Controller synchronously: every call an operation issues
// is executed inline and resolved before the method returns. It is meant for
// the CLI and scripts where nothing else can race the request.
type Session struct {
	ctrl *Controller
	svc  Services
	log  *logger.Logger
}

// NewSession creates a session over a fresh controller
func NewSession(svc Services, log *logger.Logger, opts ...Option) *Session {
	if log == nil {
		log = logger.Nop()
	}
	opts = append([]Option{WithLogger(log)}, opts...)
	return &Session{
		ctrl: New(opts...),
		svc:  svc,
		log:  log.WithComponent("session"),
	}
}

// Controller exposes the underlying controller for read access
func (s *Session) Controller() *Controller {
	return s.ctrl
}

// Snapshot returns the controller snapshot
func (s *Session) Snapshot() Snapshot {
	return s.ctrl.Snapshot()
}

// Discover runs keyword discovery for niche
func (s *Session) Discover(ctx context.Context, niche string) error {
	call, err := s.ctrl.Discover(niche)
	if err != nil {
		return err
	}
	return s.run(ctx, call)
}

// GenerateViralIdeas runs viral idea generation
func (s *Session) GenerateViralIdeas(ctx context.Context) error {
	call, err := s.ctrl.GenerateViralIdeas()
	if err != nil {
		return err
	}
	return s.run(ctx, call)
}

// UseKeywords installs a keyword set without calling the backend
func (s *Session) UseKeywords(niche string, keywords []string) error {
	return s.ctrl.UseKeywords(niche, keywords)
}

// SelectKeyword analyzes kw with the current filters
func (s *Session) SelectKeyword(ctx context.Context, kw string) error {
	call, err := s.ctrl.SelectKeyword(kw)
	if err != nil {
		return err
	}
	return s.run(ctx, call)
}

// Back moves one step back
func (s *Session) Back() {
	s.ctrl.Back()
}

// SetTimeWindow changes the time window, re-querying when it auto-applies
func (s *Session) SetTimeWindow(ctx context.Context, tw filter.TimeWindow) error {
	call, err := s.ctrl.SetTimeWindow(tw)
	if err != nil {
		return err
	}
	return s.run(ctx, call)
}

// SetVideoFormat changes the video format, re-querying when it auto-applies
func (s *Session) SetVideoFormat(ctx context.Context, f filter.VideoFormat) error {
	call, err := s.ctrl.SetVideoFormat(f)
	if err != nil {
		return err
	}
	return s.run(ctx, call)
}

// SetSmallChannelsOnly changes the small-channel toggle
func (s *Session) SetSmallChannelsOnly(ctx context.Context, on bool) error {
	return s.run(ctx, s.ctrl.SetSmallChannelsOnly(on))
}

// SetViewRange changes the view range
func (s *Session) SetViewRange(ctx context.Context, low, high int) error {
	call, err := s.ctrl.SetViewRange(low, high)
	if err != nil {
		return err
	}
	return s.run(ctx, call)
}

// CommitFilters applies pending filter changes
func (s *Session) CommitFilters(ctx context.Context) error {
	return s.run(ctx, s.ctrl.CommitFilters())
}

// ApplyFilters moves the controller to target through the regular setters
// and runs a single analysis for the result: every changed field is stored
// before anything is sent, and pending cold changes are committed. An
// inverted view range is swapped. It returns the fields that changed.
//
// When nothing changed but the previous call failed, the analysis is issued
// again so a repeated apply retries.
func (s *Session) ApplyFilters(ctx context.Context, target filter.State) ([]filter.Field, error) {
	target = target.Normalized()
	if err := target.Validate(); err != nil {
		return nil, err
	}

	changed := filter.Diff(s.ctrl.Filters(), target)
	if len(changed) == 0 {
		if s.ctrl.Notice() == nil {
			return nil, nil
		}
		return nil, s.CommitFilters(ctx)
	}

	var call *Call
	for _, field := range changed {
		var (
			next *Call
			err  error
		)
		switch field {
		case filter.FieldTimeWindow:
			next, err = s.ctrl.SetTimeWindow(target.TimeWindow)
		case filter.FieldVideoFormat:
			next, err = s.ctrl.SetVideoFormat(target.VideoFormat)
		case filter.FieldSmallChannelsOnly:
			next = s.ctrl.SetSmallChannelsOnly(target.SmallChannelsOnly)
		case filter.FieldViewRange:
			next, err = s.ctrl.SetViewRange(target.ViewRange.Low, target.ViewRange.High)
		}
		if err != nil {
			return changed, err
		}
		if next != nil {
			// a newer call supersedes the previous one
			call = next
		}
	}

	if s.ctrl.Dirty() {
		if next := s.ctrl.CommitFilters(); next != nil {
			call = next
		}
	}
	return changed, s.run(ctx, call)
}

// run executes call (if any) and resolves it. A collaborator failure is
// returned as the controller's notice.
func (s *Session) run(ctx context.Context, call *Call) error {
	if call == nil {
		return nil
	}

	start := time.Now()
	res := call.Execute(ctx, s.svc)
	outcome := s.ctrl.Resolve(res)

	s.log.DebugWithFields("call finished", []logger.Field{
		logger.Seq(call.Seq),
		logger.F("kind", call.Kind),
		logger.F("outcome", outcome),
		logger.Duration(time.Since(start)),
	})

	if outcome == OutcomeFailed {
		return s.ctrl.Notice()
	}
	return nil
}
