package timestamp

import "math"

// MaxDuration is the longest video, in seconds, whose offsets fit an
// HH:MM:SS timestamp.
const MaxDuration = 24 * 60 * 60.0

// EndTolerance is how far, in seconds, a resolved end may pass the probed
// duration. Probes can under-report by a few frames.
const EndTolerance = 0.1

// ClipRequest is a resolved pair of offsets, in seconds from the start of
// the video, together with the duration they were resolved against.
type ClipRequest struct {
	Start    float64
	End      float64
	Duration float64
}

// Length returns the clip length in seconds.
func (r ClipRequest) Length() float64 {
	return r.End - r.Start
}

// CheckDuration rejects videos whose duration cannot be expressed as an
// HH:MM:SS timestamp.
func CheckDuration(totalDuration float64) error {
	if math.IsNaN(totalDuration) || totalDuration >= MaxDuration {
		return &UnsupportedDurationError{Duration: totalDuration}
	}
	return nil
}

// Resolve parses startStr and endStr and resolves them against
// totalDuration. A zero totalDuration means the length is unknown, in which
// case the end is not checked against it.
func Resolve(totalDuration float64, startStr, endStr string) (ClipRequest, error) {
	start, err := ParseStart(startStr)
	if err != nil {
		return ClipRequest{}, err
	}
	end, err := ParseEnd(endStr)
	if err != nil {
		return ClipRequest{}, err
	}
	return ResolveExpressions(totalDuration, start, end)
}

// ResolveExpressions applies relativity to already parsed expressions.
// The end is anchored first, then the start, then a forward-relative end.
func ResolveExpressions(totalDuration float64, start, end Expression) (ClipRequest, error) {
	if start.Mode == RelativeToOtherEnd && end.Mode == RelativeForwardFromStart {
		return ClipRequest{}, &AmbiguousRelativeTimingError{Start: start.Raw, End: end.Raw}
	}

	endResolved := end.Seconds
	if end.Mode == RelativeFromVideoEnd {
		endResolved = totalDuration - end.Seconds
	}

	startResolved := start.Seconds
	if start.Mode == RelativeToOtherEnd {
		startResolved = endResolved - start.Seconds
	}

	if end.Mode == RelativeForwardFromStart {
		endResolved = startResolved + end.Seconds
	}

	req := ClipRequest{Start: startResolved, End: endResolved, Duration: totalDuration}
	if err := validate(req); err != nil {
		return ClipRequest{}, err
	}
	return req, nil
}

func validate(r ClipRequest) error {
	invalid := func(reason string) error {
		return &InvalidClipRangeError{Start: r.Start, End: r.End, Duration: r.Duration, Reason: reason}
	}
	switch {
	case !finite(r.Start) || !finite(r.End) || !finite(r.Duration):
		return invalid("offsets and duration must be finite numbers")
	case r.Start < 0:
		return invalid("start is before the beginning of the video")
	case r.End < 0:
		return invalid("end is before the beginning of the video")
	case r.Start >= r.End:
		return invalid("start must come before end")
	case r.Duration > 0 && r.End > r.Duration+EndTolerance:
		return invalid("end is past the end of the video")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
