package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/formatter"
	"github.com/yildizm/TrendLens/internal/present"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/workflow"
)

// filterFlags are the filter overrides shared by analyze, scan and watch
type filterFlags struct {
	timeWindow  string
	videoFormat string
	small       bool
	viewLow     int
	viewHigh    int
	autoApply   []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.timeWindow, "time", "t", "", "time window (hours, 3_days, 7_days, month, 3_months, 7_months)")
	cmd.Flags().StringVar(&f.videoFormat, "video-format", "", "video format (any, shorts, normal)")
	cmd.Flags().BoolVar(&f.small, "small", false, "only channels under 100k subscribers")
	cmd.Flags().IntVar(&f.viewLow, "view-low", 0, "lower view-range slider position (0-100)")
	cmd.Flags().IntVar(&f.viewHigh, "view-high", 100, "upper view-range slider position (0-100)")
	cmd.Flags().StringSliceVar(&f.autoApply, "auto-apply", nil, "filters that re-query immediately (time_window, video_format, small_channels_only, view_range)")
}

// workflowFilters is an initial filter state with its auto-apply policy
type workflowFilters struct {
	state  filter.State
	policy filter.Policy
}

// configuredFilters returns the filters and policy from the config file
func configuredFilters(cfg *config.Config) (workflowFilters, error) {
	state, err := cfg.InitialFilters()
	if err != nil {
		return workflowFilters{}, fmt.Errorf("invalid configured filters: %w", err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		return workflowFilters{}, fmt.Errorf("invalid configured policy: %w", err)
	}
	return workflowFilters{state: state, policy: policy}, nil
}

// resolve starts from the configured filters and applies the flags the user set
func (f *filterFlags) resolve(cmd *cobra.Command, cfg *config.Config) (workflowFilters, error) {
	base, err := configuredFilters(cfg)
	if err != nil {
		return workflowFilters{}, err
	}
	state, policy := base.state, base.policy

	flags := cmd.Flags()
	if flags.Changed("time") {
		tw, err := filter.ParseTimeWindow(f.timeWindow)
		if err != nil {
			return workflowFilters{}, err
		}
		if state, err = state.WithTimeWindow(tw); err != nil {
			return workflowFilters{}, err
		}
	}
	if flags.Changed("video-format") {
		vf, err := filter.ParseVideoFormat(f.videoFormat)
		if err != nil {
			return workflowFilters{}, err
		}
		if state, err = state.WithVideoFormat(vf); err != nil {
			return workflowFilters{}, err
		}
	}
	if flags.Changed("small") {
		state = state.WithSmallChannelsOnly(f.small)
	}
	if flags.Changed("view-low") || flags.Changed("view-high") {
		low, high := state.ViewRange.Low, state.ViewRange.High
		if flags.Changed("view-low") {
			low = f.viewLow
		}
		if flags.Changed("view-high") {
			high = f.viewHigh
		}
		if state, err = state.WithViewRange(low, high); err != nil {
			return workflowFilters{}, err
		}
	}
	if flags.Changed("auto-apply") {
		if policy, err = filter.PolicyFromNames(f.autoApply); err != nil {
			return workflowFilters{}, err
		}
	}

	return workflowFilters{state: state, policy: policy}, nil
}

// analysisReport builds a report from the session's current analysis
func analysisReport(s *workflow.Session) *formatter.Report {
	snap := s.Snapshot()
	return &formatter.Report{
		Niche:       snap.Niche,
		Keyword:     snap.SelectedKeyword,
		Filters:     snap.Filters,
		Request:     query.BuildAnalysisRequest(snap.SelectedKeyword, snap.Filters),
		Cards:       present.PresentAll(snap.Videos),
		GeneratedAt: time.Now(),
	}
}
