package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS objectives (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			frequency TEXT NOT NULL,
			min_level INTEGER NOT NULL DEFAULT 1,
			value INTEGER NOT NULL,
			exercise TEXT,
			reps INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS objective_progress (
			objective_id TEXT PRIMARY KEY,
			last_completed TEXT
		);`,
		// Singleton: the CHECK pins the only row to id 1.
		`CREATE TABLE IF NOT EXISTS stats (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total_exp INTEGER NOT NULL DEFAULT 0,
			total_validations INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			last_validation_date TEXT,
			validations_today INTEGER NOT NULL DEFAULT 0,
			combo_validations INTEGER NOT NULL DEFAULT 0,
			reps_pushups INTEGER NOT NULL DEFAULT 0,
			reps_squats INTEGER NOT NULL DEFAULT 0,
			reps_lunges INTEGER NOT NULL DEFAULT 0,
			reps_abs INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			unlocked INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS daily_pool (
			objective_id TEXT PRIMARY KEY,
			FOREIGN KEY(objective_id) REFERENCES objectives(id)
		);`,
		`CREATE TABLE IF NOT EXISTS elite_daily (
			objective_id TEXT NOT NULL,
			date TEXT NOT NULL,
			FOREIGN KEY(objective_id) REFERENCES objectives(id)
		);`,
		// Date markers guarding day-rollover work (pool generated, bonus given, ...).
		`CREATE TABLE IF NOT EXISTS scheduler_markers (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_objectives_min_level ON objectives(min_level);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE stats ADD COLUMN exp_today INTEGER NOT NULL DEFAULT 0;`,
		`ALTER TABLE stats ADD COLUMN last_exp_date TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO stats (id) VALUES (1);`); err != nil {
		return fmt.Errorf("migrate stats row: %w", err)
	}

	return nil
}
