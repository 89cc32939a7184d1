// Package viewrange maps the linear view-count slider onto a logarithmic
// view-count scale.
package viewrange

import (
	"fmt"
	"math"
	"strconv"
)

// Slider and view-count bounds
const (
	SliderMin = 0
	SliderMax = 100

	MinViews int64 = 1_000
	MaxViews int64 = 10_000_000
)

var (
	logMin = math.Log(float64(MinViews))
	logMax = math.Log(float64(MaxViews))
	step   = (logMax - logMin) / float64(SliderMax-SliderMin)
)

// ToMagnitude converts a slider position in [0,100] into a view count.
func ToMagnitude(p int) int64 {
	return int64(math.Round(math.Exp(logMin + step*float64(p))))
}

// ToLinear converts a view count back into a slider position. Only used for
// display; non-positive counts map to the slider minimum.
func ToLinear(v int64) int {
	if v <= 0 {
		return SliderMin
	}
	return int(math.Round((math.Log(float64(v)) - logMin) / step))
}

// Format renders a view count the way the range label shows it:
// 999, 1k, 250k, 1.5M.
func Format(v int64) string {
	switch {
	case v >= 1_000_000:
		return strconv.FormatFloat(float64(v)/1_000_000, 'f', 1, 64) + "M"
	case v >= 1_000:
		return strconv.FormatFloat(math.Round(float64(v)/1_000), 'f', 0, 64) + "k"
	default:
		return strconv.FormatInt(v, 10)
	}
}

// FormatRange renders the label for a pair of slider positions.
func FormatRange(low, high int) string {
	return fmt.Sprintf("%s - %s", Format(ToMagnitude(low)), Format(ToMagnitude(high)))
}
