// Package timestamp parses user supplied clip boundaries and resolves them
// into absolute offsets within a video.
package timestamp

import (
	"errors"
	"strconv"
	"strings"
)

// RelativityMode describes how a parsed value combines with another known
// time point.
type RelativityMode int

const (
	// Absolute values are measured from the start of the video.
	Absolute RelativityMode = iota
	// RelativeToOtherEnd start values count back from the resolved end.
	RelativeToOtherEnd
	// RelativeForwardFromStart end values count forward from the resolved start.
	RelativeForwardFromStart
	// RelativeFromVideoEnd end values count back from the total duration.
	RelativeFromVideoEnd
)

func (m RelativityMode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case RelativeToOtherEnd:
		return "relative-to-end"
	case RelativeForwardFromStart:
		return "relative-from-start"
	case RelativeFromVideoEnd:
		return "relative-from-video-end"
	default:
		return "unknown"
	}
}

// Expression is a classified and parsed time expression.
type Expression struct {
	Raw     string
	Mode    RelativityMode
	Seconds float64
}

// Field names, indexed from the right of a segmented numeral.
var fieldNames = [...]string{"seconds", "minutes", "hours"}

// ParseStart classifies and parses a start time. A leading '-' or 'n'
// counts back from the end; '+' or 'p' is accepted as an explicit
// positive value.
func ParseStart(raw string) (Expression, error) {
	return parse(raw, func(marker byte) RelativityMode {
		switch marker {
		case '-', 'n':
			return RelativeToOtherEnd
		default:
			return Absolute
		}
	})
}

// ParseEnd classifies and parses an end time. A leading '+' or 'p' counts
// forward from the start; '-' or 'n' counts back from the video's end.
func ParseEnd(raw string) (Expression, error) {
	return parse(raw, func(marker byte) RelativityMode {
		switch marker {
		case '+', 'p':
			return RelativeForwardFromStart
		case '-', 'n':
			return RelativeFromVideoEnd
		default:
			return Absolute
		}
	})
}

func parse(raw string, classify func(marker byte) RelativityMode) (Expression, error) {
	expr := Expression{Raw: raw}

	body := strings.TrimSpace(raw)
	if body == "" {
		return expr, &MalformedTimestampError{Input: raw, Reason: "is empty"}
	}
	if isMarker(body[0]) {
		expr.Mode = classify(body[0])
		body = strings.TrimSpace(body[1:])
	}

	secs, err := ParseSegmented(body)
	if err != nil {
		var mt *MalformedTimestampError
		if errors.As(err, &mt) {
			mt.Input = raw
		}
		return expr, err
	}
	expr.Seconds = secs
	return expr, nil
}

func isMarker(c byte) bool {
	return c == '-' || c == 'n' || c == '+' || c == 'p'
}

// ParseSegmented parses a marker-free body of 1, 2 or 3 colon separated
// fields: seconds, minutes:seconds or hours:minutes:seconds. Only the
// seconds field may be fractional.
func ParseSegmented(body string) (float64, error) {
	fields := strings.Split(body, ":")
	if len(fields) > len(fieldNames) {
		return 0, &MalformedTimestampError{
			Input:  body,
			Reason: "expected SS, MM:SS or HH:MM:SS",
		}
	}

	var total float64
	for i, f := range fields {
		f = strings.TrimSpace(f)
		name := fieldNames[len(fields)-1-i]
		last := i == len(fields)-1

		if !isDecimal(f, last) {
			reason := "is not a non-negative integer"
			if last {
				reason = "is not a non-negative number"
			}
			return 0, &MalformedTimestampError{Input: body, Field: f, Reason: reason + " (" + name + ")"}
		}

		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, &MalformedTimestampError{Input: body, Field: f, Reason: err.Error()}
		}
		total = total*60 + v
	}
	return total, nil
}

// isDecimal reports whether s is a plain run of digits, optionally with a
// single decimal point when allowFraction is set.
func isDecimal(s string, allowFraction bool) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && allowFraction:
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
