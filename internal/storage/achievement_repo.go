package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type AchievementRepo struct {
	db DBTX
}

func NewAchievementRepo(db DBTX) *AchievementRepo {
	return &AchievementRepo{db: db}
}

func (r *AchievementRepo) IsUnlocked(ctx context.Context, id string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT unlocked FROM achievements WHERE id = ?`, id)
	var unlocked int
	if err := row.Scan(&unlocked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("achievement get: %w", err)
	}
	return unlocked != 0, nil
}

// ListUnlocked returns the set of unlocked ids.
func (r *AchievementRepo) ListUnlocked(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM achievements WHERE unlocked = 1`)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}

// Set writes the row for id. An unlocked row is never flipped back: the
// upsert keeps the larger of the stored and the new flag.
func (r *AchievementRepo) Set(ctx context.Context, id string, unlocked bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO achievements (id, unlocked) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET unlocked = MAX(achievements.unlocked, excluded.unlocked)
	`, id, boolToInt(unlocked))
	if err != nil {
		return fmt.Errorf("achievement upsert: %w", err)
	}
	return nil
}
