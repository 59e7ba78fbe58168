package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// HistoryStore persists the last directory a video was picked from.
type HistoryStore struct {
	DB *sql.DB
	// Home is collapsed to "~" when saving.
	Home string
}

// Load returns the saved search history, or nil if nothing has been saved.
func (s *HistoryStore) Load() (*SearchHistory, error) {
	var h SearchHistory
	err := s.DB.QueryRow(SelectSearchHistorySQL).Scan(&h.SearchDirectory, &h.LastUsedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select search history: %w", err)
	}
	return &h, nil
}

// Save records dir as the search directory used on now's date.
func (s *HistoryStore) Save(dir string, now time.Time) error {
	_, err := s.DB.Exec(UpsertSearchHistorySQL, collapseHome(dir, s.Home), now.Format(HistoryDateFormat))
	if err != nil {
		return fmt.Errorf("save search history: %w", err)
	}
	return nil
}
