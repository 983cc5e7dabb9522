package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type StatsRepo struct {
	db DBTX
}

func NewStatsRepo(db DBTX) *StatsRepo {
	return &StatsRepo{db: db}
}

// Get returns the singleton stats row, creating it when missing.
func (r *StatsRepo) Get(ctx context.Context) (*Stats, error) {
	s, err := r.get(ctx)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO stats (id) VALUES (1)`); err != nil {
		return nil, fmt.Errorf("stats insert: %w", err)
	}
	s, err = r.get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.New("stats row missing after insert")
	}
	return s, nil
}

func (r *StatsRepo) get(ctx context.Context) (*Stats, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT total_exp, total_validations, current_streak, best_streak, last_validation_date,
			validations_today, combo_validations, exp_today, last_exp_date,
			reps_pushups, reps_squats, reps_lunges, reps_abs
		FROM stats
		WHERE id = 1
	`)
	var (
		s       Stats
		lastVal sql.NullString
		lastExp sql.NullString
	)
	if err := row.Scan(
		&s.TotalExp, &s.TotalValidations, &s.CurrentStreak, &s.BestStreak, &lastVal,
		&s.ValidationsToday, &s.ComboValidations, &s.ExpToday, &lastExp,
		&s.RepsPushups, &s.RepsSquats, &s.RepsLunges, &s.RepsAbs,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats get: %w", err)
	}
	var err error
	if s.LastValidationDate, err = parseNullDate(lastVal); err != nil {
		return nil, err
	}
	if s.LastExpDate, err = parseNullDate(lastExp); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StatsRepo) Update(ctx context.Context, s *Stats) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stats
		SET total_exp = ?, total_validations = ?, current_streak = ?, best_streak = ?,
			last_validation_date = ?, validations_today = ?, combo_validations = ?,
			exp_today = ?, last_exp_date = ?,
			reps_pushups = ?, reps_squats = ?, reps_lunges = ?, reps_abs = ?
		WHERE id = 1
	`, s.TotalExp, s.TotalValidations, s.CurrentStreak, s.BestStreak,
		FormatDate(s.LastValidationDate), s.ValidationsToday, s.ComboValidations,
		s.ExpToday, FormatDate(s.LastExpDate),
		s.RepsPushups, s.RepsSquats, s.RepsLunges, s.RepsAbs)
	if err != nil {
		return fmt.Errorf("stats update: %w", err)
	}
	return nil
}
