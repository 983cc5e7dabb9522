package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type ProgressRepo struct {
	db DBTX
}

func NewProgressRepo(db DBTX) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// LastCompleted returns nil when the objective was never completed.
func (r *ProgressRepo) LastCompleted(ctx context.Context, objectiveID string) (*time.Time, error) {
	row := r.db.QueryRowContext(ctx, `SELECT last_completed FROM objective_progress WHERE objective_id = ?`, objectiveID)
	var last sql.NullString
	if err := row.Scan(&last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("progress get: %w", err)
	}
	return parseNullDate(last)
}

func (r *ProgressRepo) Upsert(ctx context.Context, objectiveID string, completed time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO objective_progress (objective_id, last_completed) VALUES (?, ?)
		ON CONFLICT(objective_id) DO UPDATE SET last_completed = excluded.last_completed
	`, objectiveID, completed.Format(DateLayout))
	if err != nil {
		return fmt.Errorf("progress upsert: %w", err)
	}
	return nil
}
