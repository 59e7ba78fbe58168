package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewCut describes a cut about to run.
type NewCut struct {
	VideoPath     string
	VideoDuration float64
	Start         float64
	End           float64
	OutputPath    string
	Exact         bool
}

// InsertCut records a pending cut and returns its generated ID.
func InsertCut(db *sql.DB, c NewCut, createdAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(InsertCutSQL, id, c.VideoPath, c.VideoDuration, c.Start, c.End, c.OutputPath, c.Exact, formatTime(createdAt))
	if err != nil {
		return "", fmt.Errorf("insert cut: %w", err)
	}
	return id, nil
}

// MarkCutComplete sets a cut's status to complete with the output size.
func MarkCutComplete(db *sql.DB, id string, finishedAt time.Time, filesize int64, log string) error {
	_, err := db.Exec(MarkCutCompleteSQL, filesize, formatTime(finishedAt), log, id)
	if err != nil {
		return fmt.Errorf("mark cut complete: %w", err)
	}
	return nil
}

// MarkCutError sets a cut's status to error with ffmpeg's exit code and output.
func MarkCutError(db *sql.DB, id string, finishedAt time.Time, exitCode int, log string) error {
	_, err := db.Exec(MarkCutErrorSQL, exitCode, formatTime(finishedAt), log, id)
	if err != nil {
		return fmt.Errorf("mark cut error: %w", err)
	}
	return nil
}

// SelectCutByID returns the cut with the given ID, or nil if not found.
func SelectCutByID(db *sql.DB, id string) (*Cut, error) {
	c, err := scanCut(db.QueryRow(SelectCutByIDSQL, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select cut: %w", err)
	}
	return c, nil
}

// SelectRecentCuts returns up to limit cuts, newest first.
func SelectRecentCuts(db *sql.DB, limit int) ([]Cut, error) {
	rows, err := db.Query(SelectRecentCutsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent cuts: %w", err)
	}
	defer rows.Close()

	var cuts []Cut
	for rows.Next() {
		c, err := scanCut(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cut: %w", err)
		}
		cuts = append(cuts, *c)
	}
	return cuts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCut(r rowScanner) (*Cut, error) {
	var (
		c          Cut
		exitCode   sql.NullInt64
		filesize   sql.NullInt64
		createdAt  string
		finishedAt sql.NullString
		log        sql.NullString
	)
	err := r.Scan(&c.ID, &c.VideoPath, &c.VideoDuration, &c.Start, &c.End, &c.OutputPath, &c.Exact,
		&c.Status, &exitCode, &filesize, &createdAt, &finishedAt, &log)
	if err != nil {
		return nil, err
	}

	if exitCode.Valid {
		v := int(exitCode.Int64)
		c.ExitCode = &v
	}
	if filesize.Valid {
		v := filesize.Int64
		c.Filesize = &v
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t, err := parseTime(finishedAt.String)
		if err != nil {
			return nil, err
		}
		c.FinishedAt = &t
	}
	c.Log = log.String
	return &c, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
