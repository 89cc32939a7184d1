package filter

import "strings"

// TimeWindow restricts results to videos published within a period
type TimeWindow string

const (
	TimeWindowHours   TimeWindow = "hours"
	TimeWindow3Days   TimeWindow = "3_days"
	TimeWindow7Days   TimeWindow = "7_days"
	TimeWindowMonth   TimeWindow = "month"
	TimeWindow3Months TimeWindow = "3_months"
	TimeWindow7Months TimeWindow = "7_months"
)

var timeWindowLabels = map[TimeWindow]string{
	TimeWindowHours:   "Last hours",
	TimeWindow3Days:   "3 days",
	TimeWindow7Days:   "7 days",
	TimeWindowMonth:   "1 month",
	TimeWindow3Months: "3 months",
	TimeWindow7Months: "7 months",
}

// AllTimeWindows returns the time windows in display order
func AllTimeWindows() []TimeWindow {
	return []TimeWindow{
		TimeWindowHours,
		TimeWindow3Days,
		TimeWindow7Days,
		TimeWindowMonth,
		TimeWindow3Months,
		TimeWindow7Months,
	}
}

// Valid reports whether tw is a known time window
func (tw TimeWindow) Valid() bool {
	_, ok := timeWindowLabels[tw]
	return ok
}

func (tw TimeWindow) String() string {
	return string(tw)
}

// Label returns the human-readable name
func (tw TimeWindow) Label() string {
	if label, ok := timeWindowLabels[tw]; ok {
		return label
	}
	return string(tw)
}

// ParseTimeWindow parses the wire value of a time window
func ParseTimeWindow(s string) (TimeWindow, error) {
	tw := TimeWindow(strings.TrimSpace(strings.ToLower(s)))
	if !tw.Valid() {
		return "", NewValidationError(FieldTimeWindow, s,
			"must be one of: hours, 3_days, 7_days, month, 3_months, 7_months")
	}
	return tw, nil
}

// VideoFormat restricts results by video length
type VideoFormat string

const (
	VideoFormatAny    VideoFormat = "any"
	VideoFormatShorts VideoFormat = "shorts"
	VideoFormatNormal VideoFormat = "normal"
)

var videoFormatLabels = map[VideoFormat]string{
	VideoFormatAny:    "Any",
	VideoFormatShorts: "Shorts (< 4m)",
	VideoFormatNormal: "Normal (> 4m)",
}

// AllVideoFormats returns the video formats in display order
func AllVideoFormats() []VideoFormat {
	return []VideoFormat{VideoFormatAny, VideoFormatShorts, VideoFormatNormal}
}

// Valid reports whether f is a known video format
func (f VideoFormat) Valid() bool {
	_, ok := videoFormatLabels[f]
	return ok
}

func (f VideoFormat) String() string {
	return string(f)
}

// Label returns the human-readable name
func (f VideoFormat) Label() string {
	if label, ok := videoFormatLabels[f]; ok {
		return label
	}
	return string(f)
}

// ParseVideoFormat parses the wire value of a video format
func ParseVideoFormat(s string) (VideoFormat, error) {
	f := VideoFormat(strings.TrimSpace(strings.ToLower(s)))
	if !f.Valid() {
		return "", NewValidationError(FieldVideoFormat, s, "must be one of: any, shorts, normal")
	}
	return f, nil
}

// next returns the element after cur in order, wrapping around
func next[T comparable](order []T, cur T, delta int) T {
	for i, v := range order {
		if v == cur {
			n := len(order)
			return order[((i+delta)%n+n)%n]
		}
	}
	return order[0]
}

// NextTimeWindow cycles through time windows; delta may be negative
func NextTimeWindow(cur TimeWindow, delta int) TimeWindow {
	return next(AllTimeWindows(), cur, delta)
}

// NextVideoFormat cycles through video formats; delta may be negative
func NextVideoFormat(cur VideoFormat, delta int) VideoFormat {
	return next(AllVideoFormats(), cur, delta)
}
