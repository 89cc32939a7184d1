// Package workflow implements the three-step exploration flow: niche entry,
// keyword selection and video analysis.
//
// A Controller is owned by a single goroutine. Operations that need the
// backend return a *Call instead of performing I/O; the caller executes the
// call and feeds the Result back through Resolve. Every call carries a
// sequence number and only the most recently issued call may change state,
// so an older response that arrives late is dropped.
package workflow

import (
	"slices"
	"strings"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/video"
)

// ViralIdeasLabel is the niche shown for randomly generated viral ideas
const ViralIdeasLabel = "Random Viral Ideas"

// Step is one screen of the workflow
type Step int

const (
	StepNicheEntry Step = iota
	StepKeywordSelection
	StepVideoAnalysis
)

func (s Step) String() string {
	switch s {
	case StepNicheEntry:
		return "niche_entry"
	case StepKeywordSelection:
		return "keyword_selection"
	case StepVideoAnalysis:
		return "video_analysis"
	default:
		return "unknown"
	}
}

// Outcome reports what Resolve did with a Result
type Outcome int

const (
	OutcomeCommitted Outcome = iota
	OutcomeFailed
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeFailed:
		return "failed"
	default:
		return "stale"
	}
}

// Snapshot is a read-only copy of the controller state
type Snapshot struct {
	Step            Step
	Niche           string
	SelectedKeyword string
	Keywords        []string
	Videos          []video.Record
	Filters         filter.State
	Loading         bool
	Dirty           bool
	Notice          error
	Pending         *Call
}

// Controller owns the workflow state for one session
type Controller struct {
	step     Step
	niche    string
	selected string
	keywords []string
	videos   []video.Record

	filters filter.State
	policy  filter.Policy
	dirty   bool

	seq     uint64
	pending *Call
	notice  error

	log *logger.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithPolicy sets which filter fields re-query immediately
func WithPolicy(p filter.Policy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithFilters sets the initial filter selection
func WithFilters(f filter.State) Option {
	return func(c *Controller) { c.filters = f }
}

// WithLogger sets the logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) { c.log = l.WithComponent("workflow") }
}

// New creates a controller at the niche entry step
func New(opts ...Option) *Controller {
	c := &Controller{
		step:    StepNicheEntry,
		filters: filter.Default(),
		policy:  filter.DefaultPolicy(),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step returns the active step
func (c *Controller) Step() Step { return c.step }

// Niche returns the niche the current keywords were discovered for
func (c *Controller) Niche() string { return c.niche }

// SelectedKeyword returns the keyword whose videos are shown, or ""
func (c *Controller) SelectedKeyword() string { return c.selected }

// Keywords returns a copy of the current keyword set
func (c *Controller) Keywords() []string { return slices.Clone(c.keywords) }

// Videos returns a copy of the current video set
func (c *Controller) Videos() []video.Record { return video.Clone(c.videos) }

// Filters returns the current filter selection
func (c *Controller) Filters() filter.State { return c.filters }

// Policy returns the filter auto-apply policy
func (c *Controller) Policy() filter.Policy { return c.policy }

// Loading reports whether the latest issued call is still outstanding
func (c *Controller) Loading() bool { return c.pending != nil }

// Dirty reports whether cold filter changes are waiting for a commit
func (c *Controller) Dirty() bool { return c.dirty }

// Notice returns the last collaborator failure, if any
func (c *Controller) Notice() error { return c.notice }

// DismissNotice clears the last failure
func (c *Controller) DismissNotice() { c.notice = nil }

// Snapshot returns a copy of the observable state
func (c *Controller) Snapshot() Snapshot {
	var pending *Call
	if c.pending != nil {
		cp := *c.pending
		pending = &cp
	}
	return Snapshot{
		Step:            c.step,
		Niche:           c.niche,
		SelectedKeyword: c.selected,
		Keywords:        c.Keywords(),
		Videos:          c.Videos(),
		Filters:         c.filters,
		Loading:         c.Loading(),
		Dirty:           c.dirty,
		Notice:          c.notice,
		Pending:         pending,
	}
}

// Discover requests keywords for niche
func (c *Controller) Discover(niche string) (*Call, error) {
	niche = strings.TrimSpace(niche)
	if niche == "" {
		return nil, ErrEmptyNiche
	}
	if c.Loading() {
		return nil, ErrBusy
	}
	if c.step != StepNicheEntry {
		return nil, ErrWrongStep
	}

	call := c.issue(CallDiscover, TriggerUser)
	call.Discovery = query.BuildDiscoveryRequest(niche)
	return call, nil
}

// GenerateViralIdeas requests random viral keywords
func (c *Controller) GenerateViralIdeas() (*Call, error) {
	if c.Loading() {
		return nil, ErrBusy
	}
	if c.step != StepNicheEntry {
		return nil, ErrWrongStep
	}
	return c.issue(CallViralIdeas, TriggerUser), nil
}

// UseKeywords installs a known keyword set without a discovery call, e.g.
// when the keyword is given on the command line.
func (c *Controller) UseKeywords(niche string, keywords []string) error {
	if c.Loading() {
		return ErrBusy
	}
	if len(keywords) == 0 {
		return ErrNoKeywords
	}
	c.niche = niche
	c.keywords = slices.Clone(keywords)
	c.selected = ""
	c.videos = nil
	c.step = StepKeywordSelection
	return nil
}

// SelectKeyword requests the videos for kw with the current filters
func (c *Controller) SelectKeyword(kw string) (*Call, error) {
	if c.Loading() {
		return nil, ErrBusy
	}
	if c.step != StepKeywordSelection {
		return nil, ErrWrongStep
	}
	if !c.isKnownKeyword(kw) {
		return nil, ErrUnknownKeyword
	}
	return c.issueAnalysis(kw, TriggerUser), nil
}

func (c *Controller) isKnownKeyword(kw string) bool {
	if slices.Contains(c.keywords, kw) {
		return true
	}
	return kw == ViralIdeasLabel && c.niche == ViralIdeasLabel
}

// Back moves one step towards niche entry without touching any data
func (c *Controller) Back() {
	switch c.step {
	case StepVideoAnalysis:
		c.step = StepKeywordSelection
	case StepKeywordSelection:
		c.step = StepNicheEntry
	}
}

// Resume returns from niche entry to the keywords of the previous search.
// Niche, keywords, selection and videos are kept, so the last analysis is
// still there.
func (c *Controller) Resume() error {
	if c.step != StepNicheEntry {
		return ErrWrongStep
	}
	if c.Loading() {
		return ErrBusy
	}
	if len(c.keywords) == 0 {
		return ErrNoKeywords
	}
	c.step = StepKeywordSelection
	return nil
}

// Reset returns to a fresh niche entry step. Filters and policy are kept;
// an outstanding call becomes stale.
func (c *Controller) Reset() {
	c.step = StepNicheEntry
	c.niche = ""
	c.selected = ""
	c.keywords = nil
	c.videos = nil
	c.pending = nil
	c.notice = nil
	c.dirty = false
}

// SetTimeWindow changes the time window
func (c *Controller) SetTimeWindow(tw filter.TimeWindow) (*Call, error) {
	next, err := c.filters.WithTimeWindow(tw)
	if err != nil {
		return nil, err
	}
	return c.applyFilter(filter.FieldTimeWindow, next), nil
}

// SetVideoFormat changes the video format
func (c *Controller) SetVideoFormat(f filter.VideoFormat) (*Call, error) {
	next, err := c.filters.WithVideoFormat(f)
	if err != nil {
		return nil, err
	}
	return c.applyFilter(filter.FieldVideoFormat, next), nil
}

// SetSmallChannelsOnly changes the small-channel toggle
func (c *Controller) SetSmallChannelsOnly(on bool) *Call {
	return c.applyFilter(filter.FieldSmallChannelsOnly, c.filters.WithSmallChannelsOnly(on))
}

// ToggleSmallChannels flips the small-channel toggle
func (c *Controller) ToggleSmallChannels() *Call {
	return c.SetSmallChannelsOnly(!c.filters.SmallChannelsOnly)
}

// SetViewRange changes the view range. Under the default policy this only
// marks the filters dirty; CommitFilters applies it.
func (c *Controller) SetViewRange(low, high int) (*Call, error) {
	next, err := c.filters.WithViewRange(low, high)
	if err != nil {
		return nil, err
	}
	return c.applyFilter(filter.FieldViewRange, next), nil
}

// CommitFilters applies pending filter changes, re-querying the selected
// keyword when there is one.
func (c *Controller) CommitFilters() *Call {
	c.dirty = false
	return c.requery(TriggerCommit)
}

// applyFilter stores next and decides whether field's change re-queries
func (c *Controller) applyFilter(field filter.Field, next filter.State) *Call {
	if next == c.filters {
		return nil
	}
	c.filters = next

	if !c.policy.AutoApply(field) {
		c.dirty = true
		c.log.DebugWithFields("filter changed, waiting for commit", []logger.Field{logger.F("field", field)})
		return nil
	}
	return c.requery(TriggerAutoApply)
}

// requery re-issues the analysis the user is looking at (or waiting for)
// with the current filters. It is not gated on Loading: the new call
// supersedes any outstanding one.
func (c *Controller) requery(trigger Trigger) *Call {
	kw, ok := c.requeryTarget()
	if !ok {
		return nil
	}
	return c.issueAnalysis(kw, trigger)
}

func (c *Controller) requeryTarget() (string, bool) {
	if c.pending != nil && c.pending.Kind == CallAnalyze {
		return c.pending.Analysis.Keyword, true
	}
	if c.selected != "" && c.step == StepVideoAnalysis {
		return c.selected, true
	}
	return "", false
}

func (c *Controller) issueAnalysis(kw string, trigger Trigger) *Call {
	call := c.issue(CallAnalyze, trigger)
	call.Analysis = query.BuildAnalysisRequest(kw, c.filters)
	c.dirty = false
	return call
}

func (c *Controller) issue(kind CallKind, trigger Trigger) *Call {
	c.seq++
	call := &Call{Seq: c.seq, Kind: kind, Trigger: trigger}
	if c.pending != nil {
		c.log.DebugWithFields("superseding outstanding call", []logger.Field{logger.Seq(c.pending.Seq)})
	}
	c.pending = call
	c.log.DebugWithFields("issued call", []logger.Field{
		logger.Seq(call.Seq), logger.F("kind", kind), logger.F("trigger", trigger),
	})
	return call
}

// Resolve applies the result of an executed call. Results of superseded
// calls are discarded without touching state. Failures never escape: they
// become the notice and leave keywords, videos and step unchanged.
func (c *Controller) Resolve(res Result) Outcome {
	if c.pending == nil || res.Seq != c.pending.Seq {
		c.log.DebugWithFields("discarding stale result", []logger.Field{logger.Seq(res.Seq)})
		return OutcomeStale
	}

	call := c.pending
	c.pending = nil

	if res.Err != nil {
		c.notice = newFailure(call.Kind, res.Err)
		c.log.WarnWithFields("call failed", []logger.Field{
			logger.Seq(call.Seq), logger.F("kind", call.Kind), logger.Error(res.Err),
		})
		return OutcomeFailed
	}

	c.notice = nil
	switch call.Kind {
	case CallDiscover:
		c.commitKeywords(call.Discovery.Niche, res.Keywords)
	case CallViralIdeas:
		c.commitKeywords(ViralIdeasLabel, res.Keywords)
	case CallAnalyze:
		c.selected = call.Analysis.Keyword
		c.videos = video.Clone(res.Videos)
		c.step = StepVideoAnalysis
	}

	c.log.DebugWithFields("committed result", []logger.Field{
		logger.Seq(call.Seq), logger.F("kind", call.Kind), logger.F("step", c.step),
	})
	return OutcomeCommitted
}

func (c *Controller) commitKeywords(niche string, keywords []string) {
	c.niche = niche
	c.keywords = slices.Clone(keywords)
	c.selected = ""
	c.videos = nil
	c.step = StepKeywordSelection
}
