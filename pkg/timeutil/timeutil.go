package timeutil

import (
	"fmt"
	"math"
)

// split breaks seconds into whole hours, minutes and seconds, truncating
// any fraction. Negative input is treated as zero.
func split(seconds float64) (h, m, s int) {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	return total / 3600, (total % 3600) / 60, total % 60
}

// FormatClock formats seconds as HH:MM:SS (e.g. 00:01:30, 01:11:22).
func FormatClock(seconds float64) string {
	h, m, s := split(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatCompact formats seconds as HHMMSS for use in filenames.
func FormatCompact(seconds float64) string {
	h, m, s := split(seconds)
	return fmt.Sprintf("%02d%02d%02d", h, m, s)
}

// FormatPrecise formats seconds as HH:MM:SS.mmm.
func FormatPrecise(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := split(seconds)
	ms := int(math.Round((seconds - math.Floor(seconds)) * 1000))
	if ms == 1000 {
		ms = 999
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
