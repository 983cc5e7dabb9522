package storage

import (
	"context"
	"fmt"
)

type DailyPoolRepo struct {
	db DBTX
}

func NewDailyPoolRepo(db DBTX) *DailyPoolRepo {
	return &DailyPoolRepo{db: db}
}

func (r *DailyPoolRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM daily_pool`); err != nil {
		return fmt.Errorf("daily pool clear: %w", err)
	}
	return nil
}

func (r *DailyPoolRepo) Add(ctx context.Context, objectiveID string) error {
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO daily_pool (objective_id) VALUES (?)`, objectiveID); err != nil {
		return fmt.Errorf("daily pool add: %w", err)
	}
	return nil
}

// Remove reports whether objectiveID was in the pool.
func (r *DailyPoolRepo) Remove(ctx context.Context, objectiveID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_pool WHERE objective_id = ?`, objectiveID)
	if err != nil {
		return false, fmt.Errorf("daily pool remove: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("daily pool rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *DailyPoolRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_pool`).Scan(&n); err != nil {
		return 0, fmt.Errorf("daily pool count: %w", err)
	}
	return n, nil
}

// ListObjectives returns the pooled objectives joined with the catalog.
func (r *DailyPoolRepo) ListObjectives(ctx context.Context) ([]Objective, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+objectiveColumns+`
		FROM daily_pool d
		JOIN objectives o ON o.id = d.objective_id
		LEFT JOIN objective_progress p ON p.objective_id = o.id
		ORDER BY o.min_level ASC, o.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("daily pool objectives: %w", err)
	}
	defer rows.Close()
	return collectObjectives(rows)
}
