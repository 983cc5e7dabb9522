package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/bleathingman/iron-system/internal/storage"
)

// AchievementDef pairs an achievement id with its unlock predicate.
// Display metadata lives in the ui package under the same id.
type AchievementDef struct {
	ID     string
	Secret bool
	Check  func(st storage.Stats, level int) bool
}

func validationsAtLeast(n int) func(storage.Stats, int) bool {
	return func(st storage.Stats, _ int) bool { return st.TotalValidations >= n }
}

func streakAtLeast(n int) func(storage.Stats, int) bool {
	return func(st storage.Stats, _ int) bool { return st.CurrentStreak >= n }
}

func comboAtLeast(n int) func(storage.Stats, int) bool {
	return func(st storage.Stats, _ int) bool { return st.ComboValidations >= n }
}

func levelAtLeast(n int) func(storage.Stats, int) bool {
	return func(_ storage.Stats, level int) bool { return level >= n }
}

// levelExactly only fires while the player sits on that level.
func levelExactly(n int) func(storage.Stats, int) bool {
	return func(_ storage.Stats, level int) bool { return level == n }
}

func repsAtLeast(ex Exercise, n int) func(storage.Stats, int) bool {
	return func(st storage.Stats, _ int) bool { return Reps(st, ex) >= n }
}

var achievementRegistry = []AchievementDef{
	// Validation counts
	{ID: "first_blood", Check: validationsAtLeast(1)},
	{ID: "getting_started", Check: validationsAtLeast(5)},
	{ID: "grinder", Check: validationsAtLeast(25)},
	{ID: "centurion", Check: validationsAtLeast(100)},

	// Streaks
	{ID: "consistent", Check: streakAtLeast(3)},
	{ID: "week_1", Check: streakAtLeast(7)},
	{ID: "week_2", Check: streakAtLeast(14)},
	{ID: "perfect_week", Check: streakAtLeast(21)},

	// Same-day combos
	{ID: "on_fire", Check: comboAtLeast(3)},

	// Levels
	{ID: "level_5", Check: levelAtLeast(5)},
	{ID: "level_10", Check: levelAtLeast(10)},

	// Reps
	{ID: "pushups_100", Check: repsAtLeast(ExercisePushups, 100)},
	{ID: "squats_100", Check: repsAtLeast(ExerciseSquats, 100)},
	{ID: "lunges_100", Check: repsAtLeast(ExerciseLunges, 100)},
	{ID: "abs_100", Check: repsAtLeast(ExerciseAbs, 100)},
	{ID: "iron_arms", Check: repsAtLeast(ExercisePushups, 1000)},

	// Secrets
	{ID: "awakening", Secret: true, Check: levelExactly(3)},
	{ID: "iron_mind", Secret: true, Check: levelExactly(7)},
	{ID: "lone_wolf", Secret: true, Check: comboAtLeast(5)},
	{ID: "no_mercy", Secret: true, Check: comboAtLeast(8)},
}

// Achievements returns the registry in display order.
func Achievements() []AchievementDef {
	out := make([]AchievementDef, len(achievementRegistry))
	copy(out, achievementRegistry)
	return out
}

type AchievementStatus struct {
	ID       string
	Secret   bool
	Unlocked bool
}

// EvaluateAchievements tests every locked achievement against st and
// unlocks the ones whose predicate holds. It returns only ids unlocked by
// this call; unlocked achievements are never re-tested or reverted.
func (s *Service) EvaluateAchievements(ctx context.Context, st storage.Stats) ([]string, error) {
	level := LevelForTotalXP(st.TotalExp)
	var newly []string
	err := s.withTx(ctx, func(r *storage.Repos) error {
		unlocked, err := r.Achievements.ListUnlocked(ctx)
		if err != nil {
			return err
		}
		for _, a := range achievementRegistry {
			if unlocked[a.ID] {
				continue
			}
			ok := a.Check(st, level)
			if err := r.Achievements.Set(ctx, a.ID, ok); err != nil {
				return err
			}
			if ok {
				newly = append(newly, a.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, id := range newly {
		s.log.Info("achievement unlocked", zap.String("achievement", id))
	}
	return newly, nil
}

func (s *Service) IsAchievementUnlocked(ctx context.Context, id string) (bool, error) {
	return s.repos.Achievements.IsUnlocked(ctx, id)
}

// ListAchievements returns every registered achievement with its state.
func (s *Service) ListAchievements(ctx context.Context) ([]AchievementStatus, error) {
	unlocked, err := s.repos.Achievements.ListUnlocked(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AchievementStatus, 0, len(achievementRegistry))
	for _, a := range achievementRegistry {
		out = append(out, AchievementStatus{ID: a.ID, Secret: a.Secret, Unlocked: unlocked[a.ID]})
	}
	return out, nil
}
