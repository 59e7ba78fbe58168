package timestamp

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousRelativeTiming is matched by AmbiguousRelativeTimingError.
	ErrAmbiguousRelativeTiming = errors.New("ambiguous relative timing")
	// ErrMalformedTimestamp is matched by MalformedTimestampError.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrInvalidClipRange is matched by InvalidClipRangeError.
	ErrInvalidClipRange = errors.New("invalid clip range")
	// ErrUnsupportedDuration is matched by UnsupportedDurationError.
	ErrUnsupportedDuration = errors.New("unsupported duration")
)

// AmbiguousRelativeTimingError is returned when the start is given relative
// to the end and the end relative to the start.
type AmbiguousRelativeTimingError struct {
	Start string
	End   string
}

func (e *AmbiguousRelativeTimingError) Error() string {
	return fmt.Sprintf("start (%q) and end (%q) cannot both be specified relative to each other", e.Start, e.End)
}

func (e *AmbiguousRelativeTimingError) Unwrap() error { return ErrAmbiguousRelativeTiming }

// MalformedTimestampError identifies the raw string and the field that
// failed to parse.
type MalformedTimestampError struct {
	Input  string
	Field  string
	Reason string
}

func (e *MalformedTimestampError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed timestamp %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("malformed timestamp %q: field %q %s", e.Input, e.Field, e.Reason)
}

func (e *MalformedTimestampError) Unwrap() error { return ErrMalformedTimestamp }

// InvalidClipRangeError carries the computed offsets so the caller can show
// them.
type InvalidClipRangeError struct {
	Start    float64
	End      float64
	Duration float64
	Reason   string
}

func (e *InvalidClipRangeError) Error() string {
	return fmt.Sprintf("invalid clip range: %s (start=%.3fs end=%.3fs duration=%.3fs)", e.Reason, e.Start, e.End, e.Duration)
}

func (e *InvalidClipRangeError) Unwrap() error { return ErrInvalidClipRange }

// UnsupportedDurationError is returned for videos of a day or longer.
type UnsupportedDurationError struct {
	Duration float64
}

func (e *UnsupportedDurationError) Error() string {
	return fmt.Sprintf("videos of 24 hours or longer are not supported (duration=%.3fs)", e.Duration)
}

func (e *UnsupportedDurationError) Unwrap() error { return ErrUnsupportedDuration }
