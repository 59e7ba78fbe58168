package db

import (
	"path/filepath"
	"strings"
	"time"
)

// HistoryDateFormat is the layout of SearchHistory.LastUsedDate.
const HistoryDateFormat = "2006/01/02"

// timeFormat is a fixed-width UTC layout so text ordering matches time
// ordering.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// SearchHistory is the single row of the search_history table.
type SearchHistory struct {
	SearchDirectory string
	LastUsedDate    string
}

// Fresh reports whether the record was saved less than window before now.
// Dates are whole days in now's location, so a record saved yesterday is
// stale with the default one-day window.
func (h SearchHistory) Fresh(now time.Time, window time.Duration) bool {
	saved, err := time.ParseInLocation(HistoryDateFormat, h.LastUsedDate, now.Location())
	if err != nil {
		return false
	}
	age := now.Sub(saved)
	return age >= 0 && age < window
}

// Dir returns SearchDirectory with a leading "~" expanded against home.
func (h SearchHistory) Dir(home string) string {
	return expandHome(h.SearchDirectory, home)
}

// Cut statuses.
const (
	CutPending  = "pending"
	CutComplete = "complete"
	CutError    = "error"
)

// Cut represents a row in the cuts table.
type Cut struct {
	ID            string
	VideoPath     string
	VideoDuration float64
	Start         float64
	End           float64
	OutputPath    string
	Exact         bool
	Status        string
	ExitCode      *int
	Filesize      *int64
	CreatedAt     time.Time
	FinishedAt    *time.Time
	Log           string
}

func collapseHome(dir, home string) string {
	if home == "" {
		return dir
	}
	if dir == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(dir, home+string(filepath.Separator)); ok {
		return filepath.Join("~", rest)
	}
	return dir
}

func expandHome(dir, home string) string {
	if home == "" {
		return dir
	}
	if dir == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(dir, "~"+string(filepath.Separator)); ok {
		return filepath.Join(home, rest)
	}
	return dir
}
