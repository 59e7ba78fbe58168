package timestamp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSegmented(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"90", 90},
		{"1:30", 90},
		{"0:01:30", 90},
		{"00:00:90", 90},
		{"12.25", 12.25},
		{"2:03.5", 123.5},
		{"1:00:00", 3600},
		{" 1 : 02 : 03 ", 3723},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSegmented(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseSegmentedMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"abc",
		"1:2:3:4",
		"1.5:00",
		"1:2.5:00",
		"1::2",
		":30",
		"-5",
		"1:-5",
		"1e3",
		"1.2.3",
		"NaN",
		"Inf",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSegmented(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedTimestamp))
		})
	}
}

func TestParseStartModes(t *testing.T) {
	tests := []struct {
		in   string
		mode RelativityMode
		secs float64
	}{
		{"00:10", Absolute, 10},
		{"-00:10", RelativeToOtherEnd, 10},
		{"n5", RelativeToOtherEnd, 5},
		{"+5", Absolute, 5},
		{"p5", Absolute, 5},
		{"  - 1:00  ", RelativeToOtherEnd, 60},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expr, err := ParseStart(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, expr.Mode)
			assert.InDelta(t, tt.secs, expr.Seconds, 1e-9)
			assert.Equal(t, tt.in, expr.Raw)
		})
	}
}

func TestParseEndModes(t *testing.T) {
	tests := []struct {
		in   string
		mode RelativityMode
		secs float64
	}{
		{"01:00:00", Absolute, 3600},
		{"+00:05:00", RelativeForwardFromStart, 300},
		{"p30", RelativeForwardFromStart, 30},
		{"-00:01:00", RelativeFromVideoEnd, 60},
		{"n2.5", RelativeFromVideoEnd, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			expr, err := ParseEnd(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, expr.Mode)
			assert.InDelta(t, tt.secs, expr.Seconds, 1e-9)
		})
	}
}

func TestParseReportsOriginalInput(t *testing.T) {
	_, err := ParseEnd("+1:xx")
	var mt *MalformedTimestampError
	require.True(t, errors.As(err, &mt))
	assert.Equal(t, "+1:xx", mt.Input)
	assert.Equal(t, "xx", mt.Field)
	assert.Contains(t, err.Error(), "seconds")
}

func TestParseMarkerOnly(t *testing.T) {
	_, err := ParseStart("-")
	assert.ErrorIs(t, err, ErrMalformedTimestamp)

	_, err = ParseEnd("   ")
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
}

func TestRelativityModeString(t *testing.T) {
	assert.Equal(t, "absolute", Absolute.String())
	assert.Equal(t, "relative-from-video-end", RelativeFromVideoEnd.String())
	assert.Equal(t, "unknown", RelativityMode(42).String())
}
