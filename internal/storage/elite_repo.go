package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type EliteRepo struct {
	db DBTX
}

func NewEliteRepo(db DBTX) *EliteRepo {
	return &EliteRepo{db: db}
}

// Get returns the most recent elite row, or nil when the slot is empty.
func (r *EliteRepo) Get(ctx context.Context) (*EliteDaily, error) {
	row := r.db.QueryRowContext(ctx, `SELECT objective_id, date FROM elite_daily ORDER BY date DESC LIMIT 1`)
	var (
		e    EliteDaily
		date string
	)
	if err := row.Scan(&e.ObjectiveID, &date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("elite get: %w", err)
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	e.Date = d
	return &e, nil
}

func (r *EliteRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM elite_daily`); err != nil {
		return fmt.Errorf("elite clear: %w", err)
	}
	return nil
}

// Set replaces the slot with objectiveID for date.
func (r *EliteRepo) Set(ctx context.Context, objectiveID string, date time.Time) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO elite_daily (objective_id, date) VALUES (?, ?)`, objectiveID, date.Format(DateLayout)); err != nil {
		return fmt.Errorf("elite insert: %w", err)
	}
	return nil
}
