package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// DateLayout is the on-disk format of every calendar date column.
const DateLayout = "2006-01-02"

type Objective struct {
	ID        string
	Title     string
	Category  string
	Frequency string
	MinLevel  int
	Value     int
	Exercise  *string // pushups|squats|lunges|abs, nil when no reps are tracked
	Reps      int

	// Joined from objective_progress; nil when never completed.
	LastCompleted *time.Time
}

// Stats is the singleton progression aggregate.
type Stats struct {
	TotalExp           int
	TotalValidations   int
	CurrentStreak      int
	BestStreak         int
	LastValidationDate *time.Time
	ValidationsToday   int
	ComboValidations   int

	// Daily XP ledger for the optional cap and the progress gauge.
	ExpToday    int
	LastExpDate *time.Time

	RepsPushups int
	RepsSquats  int
	RepsLunges  int
	RepsAbs     int
}

type EliteDaily struct {
	ObjectiveID string
	Date        time.Time
}

// FormatDate renders a date column value; nil stays NULL.
func FormatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(DateLayout)
}

// ParseDate parses a stored date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func parseNullDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}
