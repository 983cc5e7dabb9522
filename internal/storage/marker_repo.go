package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Marker keys.
const (
	MarkerDailyPoolDate = "daily_pool_date"
	MarkerDailyPoolSize = "daily_pool_size"
	MarkerEliteDate     = "elite_daily_date"
	MarkerBonusDate     = "daily_bonus_date"
)

type MarkerRepo struct {
	db DBTX
}

func NewMarkerRepo(db DBTX) *MarkerRepo {
	return &MarkerRepo{db: db}
}

func (r *MarkerRepo) get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM scheduler_markers WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("marker get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *MarkerRepo) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scheduler_markers (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("marker set %s: %w", key, err)
	}
	return nil
}

// Date returns nil when the marker was never stamped.
func (r *MarkerRepo) Date(ctx context.Context, key string) (*time.Time, error) {
	v, ok, err := r.get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	d, err := ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *MarkerRepo) SetDate(ctx context.Context, key string, date time.Time) error {
	return r.set(ctx, key, date.Format(DateLayout))
}

// Int returns 0 when the marker was never stamped.
func (r *MarkerRepo) Int(ctx context.Context, key string) (int, error) {
	v, ok, err := r.get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("marker %s: %w", key, err)
	}
	return n, nil
}

func (r *MarkerRepo) SetInt(ctx context.Context, key string, n int) error {
	return r.set(ctx, key, strconv.Itoa(n))
}
