// Package filter holds the analysis filter selection and the policy that
// decides which filter changes re-query immediately.
package filter

import (
	"fmt"

	"github.com/yildizm/TrendLens/internal/viewrange"
)

// Field identifies one filter field
type Field string

const (
	FieldTimeWindow        Field = "time_window"
	FieldVideoFormat       Field = "video_format"
	FieldSmallChannelsOnly Field = "small_channels_only"
	FieldViewRange         Field = "view_range"
)

// AllFields returns every filter field
func AllFields() []Field {
	return []Field{FieldTimeWindow, FieldVideoFormat, FieldSmallChannelsOnly, FieldViewRange}
}

// ParseField parses a field identifier
func ParseField(s string) (Field, error) {
	for _, f := range AllFields() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", NewValidationError("field", s,
		"must be one of: time_window, video_format, small_channels_only, view_range")
}

// ViewRange is a pair of linear slider positions, Low <= High
type ViewRange struct {
	Low  int `yaml:"low" json:"low"`
	High int `yaml:"high" json:"high"`
}

// FullViewRange covers every view count
func FullViewRange() ViewRange {
	return ViewRange{Low: viewrange.SliderMin, High: viewrange.SliderMax}
}

// MinViews returns the lower bound as a view count
func (r ViewRange) MinViews() int64 {
	return viewrange.ToMagnitude(r.Low)
}

// MaxViews returns the upper bound as a view count
func (r ViewRange) MaxViews() int64 {
	return viewrange.ToMagnitude(r.High)
}

func (r ViewRange) String() string {
	return viewrange.FormatRange(r.Low, r.High)
}

// State is the current filter selection. Values are immutable; setters return
// a modified copy.
type State struct {
	TimeWindow        TimeWindow  `yaml:"time_window" json:"time_window"`
	VideoFormat       VideoFormat `yaml:"video_format" json:"video_format"`
	SmallChannelsOnly bool        `yaml:"small_channels_only" json:"small_channels_only"`
	ViewRange         ViewRange   `yaml:"view_range" json:"view_range"`
}

// Default returns the initial filter selection
func Default() State {
	return State{
		TimeWindow:        TimeWindow7Days,
		VideoFormat:       VideoFormatAny,
		SmallChannelsOnly: false,
		ViewRange:         FullViewRange(),
	}
}

// WithTimeWindow returns s with the time window replaced
func (s State) WithTimeWindow(tw TimeWindow) (State, error) {
	if !tw.Valid() {
		return s, NewValidationError(FieldTimeWindow, string(tw), "unknown time window")
	}
	s.TimeWindow = tw
	return s, nil
}

// WithVideoFormat returns s with the video format replaced
func (s State) WithVideoFormat(f VideoFormat) (State, error) {
	if !f.Valid() {
		return s, NewValidationError(FieldVideoFormat, string(f), "unknown video format")
	}
	s.VideoFormat = f
	return s, nil
}

// WithSmallChannelsOnly returns s with the small-channel toggle replaced
func (s State) WithSmallChannelsOnly(on bool) State {
	s.SmallChannelsOnly = on
	return s
}

// WithViewRange returns s with the view range replaced. An inverted pair is
// swapped; positions outside the slider domain are rejected, not clamped.
func (s State) WithViewRange(low, high int) (State, error) {
	if low > high {
		low, high = high, low
	}
	if low < viewrange.SliderMin || high > viewrange.SliderMax {
		return s, NewValidationError(FieldViewRange, fmt.Sprintf("[%d,%d]", low, high),
			fmt.Sprintf("positions must be within [%d,%d]", viewrange.SliderMin, viewrange.SliderMax))
	}
	s.ViewRange = ViewRange{Low: low, High: high}
	return s, nil
}

// Normalized returns s with an inverted view range swapped, the same way
// WithViewRange treats it. Out-of-domain positions are left for Validate.
func (s State) Normalized() State {
	if s.ViewRange.Low > s.ViewRange.High {
		s.ViewRange.Low, s.ViewRange.High = s.ViewRange.High, s.ViewRange.Low
	}
	return s
}

// Validate checks every field of s
func (s State) Validate() error {
	if !s.TimeWindow.Valid() {
		return NewValidationError(FieldTimeWindow, string(s.TimeWindow), "unknown time window")
	}
	if !s.VideoFormat.Valid() {
		return NewValidationError(FieldVideoFormat, string(s.VideoFormat), "unknown video format")
	}
	r := s.ViewRange
	if r.Low > r.High || r.Low < viewrange.SliderMin || r.High > viewrange.SliderMax {
		return NewValidationError(FieldViewRange, fmt.Sprintf("[%d,%d]", r.Low, r.High),
			fmt.Sprintf("expected %d <= low <= high <= %d", viewrange.SliderMin, viewrange.SliderMax))
	}
	return nil
}

// Diff lists the fields whose values differ between a and b
func Diff(a, b State) []Field {
	var changed []Field
	if a.TimeWindow != b.TimeWindow {
		changed = append(changed, FieldTimeWindow)
	}
	if a.VideoFormat != b.VideoFormat {
		changed = append(changed, FieldVideoFormat)
	}
	if a.SmallChannelsOnly != b.SmallChannelsOnly {
		changed = append(changed, FieldSmallChannelsOnly)
	}
	if a.ViewRange != b.ViewRange {
		changed = append(changed, FieldViewRange)
	}
	return changed
}
