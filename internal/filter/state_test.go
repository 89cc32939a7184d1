package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, TimeWindow7Days, s.TimeWindow)
	assert.Equal(t, VideoFormatAny, s.VideoFormat)
	assert.False(t, s.SmallChannelsOnly)
	assert.Equal(t, ViewRange{Low: 0, High: 100}, s.ViewRange)
	assert.NoError(t, s.Validate())
}

func TestSettersReturnCopies(t *testing.T) {
	orig := Default()

	changed, err := orig.WithTimeWindow(TimeWindowMonth)
	require.NoError(t, err)

	assert.Equal(t, TimeWindowMonth, changed.TimeWindow)
	assert.Equal(t, TimeWindow7Days, orig.TimeWindow)
}

func TestWithTimeWindowInvalid(t *testing.T) {
	s := Default()

	got, err := s.WithTimeWindow("fortnight")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, s, got)
}

func TestWithVideoFormat(t *testing.T) {
	s, err := Default().WithVideoFormat(VideoFormatShorts)
	require.NoError(t, err)
	assert.Equal(t, VideoFormatShorts, s.VideoFormat)

	_, err = s.WithVideoFormat("vertical")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldVideoFormat, verr.Field)
}

func TestWithViewRange(t *testing.T) {
	tests := []struct {
		name      string
		low, high int
		want      ViewRange
		wantErr   bool
	}{
		{name: "full", low: 0, high: 100, want: ViewRange{0, 100}},
		{name: "narrow", low: 20, high: 40, want: ViewRange{20, 40}},
		{name: "single point", low: 50, high: 50, want: ViewRange{50, 50}},
		{name: "inverted is swapped", low: 70, high: 30, want: ViewRange{30, 70}},
		{name: "below domain", low: -1, high: 50, wantErr: true},
		{name: "above domain", low: 10, high: 101, wantErr: true},
		{name: "inverted and out of domain", low: 120, high: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := Default()
			got, err := before.WithViewRange(tt.low, tt.high)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, FieldViewRange, verr.Field)
				assert.Equal(t, before, got, "state must be unchanged on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ViewRange)
		})
	}
}

func TestViewRangeMagnitudes(t *testing.T) {
	r := FullViewRange()
	assert.Equal(t, int64(1000), r.MinViews())
	assert.Equal(t, int64(10000000), r.MaxViews())
	assert.Equal(t, "1k - 10.0M", r.String())
}

func TestValidate(t *testing.T) {
	s := Default()
	s.ViewRange = ViewRange{Low: 80, High: 20}
	assert.Error(t, s.Validate())

	n := s.Normalized()
	assert.Equal(t, ViewRange{Low: 20, High: 80}, n.ViewRange)
	assert.NoError(t, n.Validate())

	s.ViewRange = ViewRange{Low: 120, High: 20}
	assert.Error(t, s.Normalized().Validate())

	s = Default()
	s.TimeWindow = ""
	assert.Error(t, s.Validate())
}

func TestDiff(t *testing.T) {
	a := Default()
	b := a.WithSmallChannelsOnly(true)
	b, _ = b.WithViewRange(10, 90)

	assert.Equal(t, []Field{FieldSmallChannelsOnly, FieldViewRange}, Diff(a, b))
	assert.Empty(t, Diff(a, a))
}

func TestParseTimeWindow(t *testing.T) {
	tw, err := ParseTimeWindow(" 3_Months ")
	require.NoError(t, err)
	assert.Equal(t, TimeWindow3Months, tw)

	_, err = ParseTimeWindow("yesterday")
	assert.True(t, IsValidationError(err))
}

func TestNextCycles(t *testing.T) {
	assert.Equal(t, TimeWindowHours, NextTimeWindow(TimeWindow7Months, 1))
	assert.Equal(t, TimeWindow7Months, NextTimeWindow(TimeWindowHours, -1))
	assert.Equal(t, VideoFormatShorts, NextVideoFormat(VideoFormatAny, 1))
	assert.Equal(t, VideoFormatNormal, NextVideoFormat(VideoFormatAny, -1))
}
