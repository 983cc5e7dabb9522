package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bleathingman/iron-system/internal/storage"
)

// ObjectiveDef is one row of the built-in catalog.
type ObjectiveDef struct {
	ID        string
	Title     string
	Category  Category
	Frequency Frequency
	MinLevel  int
	Value     int
	Exercise  Exercise
	Reps      int
}

func (d ObjectiveDef) row() storage.Objective {
	o := storage.Objective{
		ID:        d.ID,
		Title:     d.Title,
		Category:  string(d.Category),
		Frequency: string(d.Frequency),
		MinLevel:  d.MinLevel,
		Value:     d.Value,
		Reps:      d.Reps,
	}
	if d.Exercise.IsValid() {
		ex := string(d.Exercise)
		o.Exercise = &ex
	}
	return o
}

func (d ObjectiveDef) validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("objective id is required")
	case !d.Category.IsValid():
		return fmt.Errorf("objective %s: invalid category %q", d.ID, d.Category)
	case !d.Frequency.IsValid():
		return fmt.Errorf("objective %s: invalid frequency %q", d.ID, d.Frequency)
	case d.MinLevel < 1:
		return fmt.Errorf("objective %s: min_level must be >= 1", d.ID)
	case d.Value <= 0:
		return fmt.Errorf("objective %s: value must be > 0", d.ID)
	}
	return nil
}

func BuiltinObjectives() []ObjectiveDef {
	return []ObjectiveDef{
		// Daily
		{ID: "pushups_5", Title: "5 push-ups", Category: CategoryDiscipline, Frequency: FrequencyDaily, MinLevel: 1, Value: 10, Exercise: ExercisePushups, Reps: 5},
		{ID: "squats_10", Title: "10 squats", Category: CategoryEndurance, Frequency: FrequencyDaily, MinLevel: 1, Value: 10, Exercise: ExerciseSquats, Reps: 10},
		{ID: "abs_10", Title: "10 crunches", Category: CategoryDiscipline, Frequency: FrequencyDaily, MinLevel: 1, Value: 10, Exercise: ExerciseAbs, Reps: 10},
		{ID: "plank_60", Title: "Hold a plank for 60 seconds", Category: CategoryDiscipline, Frequency: FrequencyDaily, MinLevel: 1, Value: 15},
		{ID: "walk_10", Title: "Walk for 10 minutes", Category: CategoryEndurance, Frequency: FrequencyDaily, MinLevel: 1, Value: 10},
		{ID: "meditate_5", Title: "Meditate for 5 minutes", Category: CategoryMental, Frequency: FrequencyDaily, MinLevel: 1, Value: 10},
		{ID: "lunges_10", Title: "10 lunges", Category: CategoryEndurance, Frequency: FrequencyDaily, MinLevel: 2, Value: 15, Exercise: ExerciseLunges, Reps: 10},
		{ID: "read_10", Title: "Read 10 pages", Category: CategoryMental, Frequency: FrequencyDaily, MinLevel: 2, Value: 15},
		{ID: "pushups_20", Title: "20 push-ups", Category: CategoryDiscipline, Frequency: FrequencyDaily, MinLevel: 3, Value: 25, Exercise: ExercisePushups, Reps: 20},
		{ID: "burpees_10", Title: "10 burpees", Category: CategoryEndurance, Frequency: FrequencyDaily, MinLevel: 3, Value: 25},
		{ID: "squats_30", Title: "30 squats", Category: CategoryEndurance, Frequency: FrequencyDaily, MinLevel: 4, Value: 25, Exercise: ExerciseSquats, Reps: 30},
		{ID: "abs_40", Title: "40 crunches", Category: CategoryDiscipline, Frequency: FrequencyDaily, MinLevel: 4, Value: 25, Exercise: ExerciseAbs, Reps: 40},
		{ID: "cold_shower", Title: "Take a cold shower", Category: CategoryMental, Frequency: FrequencyDaily, MinLevel: 5, Value: 20},

		// Weekly (elite candidates)
		{ID: "long_walk_60", Title: "Walk for an hour", Category: CategoryEndurance, Frequency: FrequencyWeekly, MinLevel: 1, Value: 50},
		{ID: "pushups_50", Title: "50 push-ups in one session", Category: CategoryDiscipline, Frequency: FrequencyWeekly, MinLevel: 2, Value: 60, Exercise: ExercisePushups, Reps: 50},
		{ID: "digital_detox", Title: "A full evening without screens", Category: CategoryMental, Frequency: FrequencyWeekly, MinLevel: 2, Value: 50},
		{ID: "run_5k", Title: "Run 5 km", Category: CategoryEndurance, Frequency: FrequencyWeekly, MinLevel: 3, Value: 80},
		{ID: "lunges_60", Title: "60 lunges in one session", Category: CategoryEndurance, Frequency: FrequencyWeekly, MinLevel: 4, Value: 70, Exercise: ExerciseLunges, Reps: 60},
		{ID: "squats_100", Title: "100 squats in one session", Category: CategoryEndurance, Frequency: FrequencyWeekly, MinLevel: 4, Value: 80, Exercise: ExerciseSquats, Reps: 100},
		{ID: "abs_100", Title: "100 crunches in one session", Category: CategoryDiscipline, Frequency: FrequencyWeekly, MinLevel: 5, Value: 90, Exercise: ExerciseAbs, Reps: 100},
	}
}

// SeedCatalog inserts the built-in objectives, skipping ids already stored.
// It is safe to call on every startup and returns the number of new rows.
func (s *Service) SeedCatalog(ctx context.Context) (int, error) {
	return s.seedObjectives(ctx, BuiltinObjectives())
}

func (s *Service) seedObjectives(ctx context.Context, defs []ObjectiveDef) (int, error) {
	seen := make(map[string]bool, len(defs))
	batch := make([]storage.Objective, 0, len(defs))
	for _, d := range defs {
		if seen[d.ID] {
			s.log.Debug("duplicate objective id in seed batch", zap.String("objective", d.ID))
			continue
		}
		seen[d.ID] = true
		if err := d.validate(); err != nil {
			s.log.Warn("skipping invalid catalog row", zap.Error(err))
			continue
		}
		batch = append(batch, d.row())
	}

	inserted := 0
	err := s.withTx(ctx, func(r *storage.Repos) error {
		for _, o := range batch {
			ok, err := r.Objectives.InsertIgnore(ctx, o)
			if err != nil {
				return err
			}
			if ok {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		s.log.Info("catalog seeded", zap.Int("inserted", inserted))
	}
	return inserted, nil
}

// LoadObjectivesForLevel returns the objectives unlocked at level with their
// last completion date, ordered by min_level.
func (s *Service) LoadObjectivesForLevel(ctx context.Context, level int) ([]storage.Objective, error) {
	if err := checkLevel(level); err != nil {
		return nil, err
	}
	return s.repos.Objectives.ListForLevel(ctx, level)
}

func (s *Service) GetObjective(ctx context.Context, id string) (*storage.Objective, error) {
	o, err := s.repos.Objectives.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: %s", ErrObjectiveNotFound, id)
	}
	return o, nil
}
