package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type ObjectiveRepo struct {
	db DBTX
}

func NewObjectiveRepo(db DBTX) *ObjectiveRepo {
	return &ObjectiveRepo{db: db}
}

// InsertIgnore inserts o unless a row with the same id exists. It reports
// whether a row was written.
func (r *ObjectiveRepo) InsertIgnore(ctx context.Context, o Objective) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO objectives (id, title, category, frequency, min_level, value, exercise, reps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.Title, o.Category, o.Frequency, o.MinLevel, o.Value, o.Exercise, o.Reps)
	if err != nil {
		return false, fmt.Errorf("objective insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("objective rows affected: %w", err)
	}
	return n > 0, nil
}

const objectiveColumns = `
	o.id, o.title, o.category, o.frequency, o.min_level, o.value, o.exercise, o.reps,
	p.last_completed`

func (r *ObjectiveRepo) Get(ctx context.Context, id string) (*Objective, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+objectiveColumns+`
		FROM objectives o
		LEFT JOIN objective_progress p ON p.objective_id = o.id
		WHERE o.id = ?
	`, id)
	o, err := scanObjective(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

// ListForLevel returns every objective unlocked at level, ordered by
// min_level then id.
func (r *ObjectiveRepo) ListForLevel(ctx context.Context, level int) ([]Objective, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+objectiveColumns+`
		FROM objectives o
		LEFT JOIN objective_progress p ON p.objective_id = o.id
		WHERE o.min_level <= ?
		ORDER BY o.min_level ASC, o.id ASC
	`, level)
	if err != nil {
		return nil, fmt.Errorf("objective list: %w", err)
	}
	defer rows.Close()
	return collectObjectives(rows)
}

func collectObjectives(rows *sql.Rows) ([]Objective, error) {
	var out []Objective
	for rows.Next() {
		o, err := scanObjective(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("objective rows: %w", err)
	}
	return out, nil
}

func scanObjective(row scanner) (*Objective, error) {
	var (
		o        Objective
		exercise sql.NullString
		last     sql.NullString
	)
	if err := row.Scan(&o.ID, &o.Title, &o.Category, &o.Frequency, &o.MinLevel, &o.Value, &exercise, &o.Reps, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("objective scan: %w", err)
	}
	if exercise.Valid && exercise.String != "" {
		v := exercise.String
		o.Exercise = &v
	}
	lc, err := parseNullDate(last)
	if err != nil {
		return nil, err
	}
	o.LastCompleted = lc
	return &o, nil
}
