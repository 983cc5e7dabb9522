package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bleathingman/iron-system/internal/storage"
)

// CanComplete applies the frequency gate: daily objectives once per
// calendar date, weekly objectives once per ISO (year, week).
func CanComplete(freq Frequency, lastCompleted *time.Time, today time.Time) bool {
	if lastCompleted == nil {
		return true
	}
	if freq == FrequencyWeekly {
		ly, lw := lastCompleted.ISOWeek()
		ty, tw := today.ISOWeek()
		return ly != ty || lw != tw
	}
	return !lastCompleted.Equal(today)
}

// IsOpen reports whether o can be validated on today.
func IsOpen(o storage.Objective, today time.Time) bool {
	return CanComplete(parseStoredFrequency(o.Frequency), o.LastCompleted, today)
}

type validation struct {
	ok        bool
	xpAwarded int
	stats     storage.Stats
}

// Validate records one completion of obj. A closed frequency gate returns
// false with no writes; storage failures roll the whole change back.
func (s *Service) Validate(ctx context.Context, obj storage.Objective) (bool, error) {
	v, err := s.validate(ctx, obj)
	if err != nil {
		return false, err
	}
	return v.ok, nil
}

func (s *Service) validate(ctx context.Context, obj storage.Objective) (*validation, error) {
	today := s.Today()
	freq := parseStoredFrequency(obj.Frequency)
	v := &validation{}

	err := s.withTx(ctx, func(r *storage.Repos) error {
		last, err := r.Progress.LastCompleted(ctx, obj.ID)
		if err != nil {
			return err
		}
		if !CanComplete(freq, last, today) {
			return nil
		}

		st, err := r.Stats.Get(ctx)
		if err != nil {
			return err
		}
		v.xpAwarded = s.creditExp(st, obj.Value, today)
		st.TotalValidations++
		registerValidation(st, today)
		if ex, ok := parseStoredExercise(obj.Exercise); ok {
			addReps(st, ex, obj.Reps)
		}

		if err := r.Stats.Update(ctx, st); err != nil {
			return err
		}
		if err := r.Progress.Upsert(ctx, obj.ID, today); err != nil {
			return err
		}
		v.ok = true
		v.stats = *st
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !v.ok {
		s.log.Debug("validation rejected by frequency gate",
			zap.String("objective", obj.ID),
			zap.String("frequency", string(freq)))
		return v, nil
	}
	s.log.Info("objective validated",
		zap.String("objective", obj.ID),
		zap.Int("xp", v.xpAwarded),
		zap.Int("total_exp", v.stats.TotalExp),
		zap.Int("streak", v.stats.CurrentStreak),
		zap.Int("combo", v.stats.ComboValidations))
	return v, nil
}

// registerValidation advances the streak/combo state machine for a
// validation on today.
func registerValidation(st *storage.Stats, today time.Time) {
	if sameDay(st.LastValidationDate, today) {
		st.ValidationsToday++
		st.ComboValidations++
	} else {
		if sameDay(st.LastValidationDate, today.AddDate(0, 0, -1)) {
			st.CurrentStreak++
		} else {
			st.CurrentStreak = 1
		}
		st.ValidationsToday = 1
		st.ComboValidations = 1
	}
	if st.CurrentStreak > st.BestStreak {
		st.BestStreak = st.CurrentStreak
	}
	d := today
	st.LastValidationDate = &d
}

func addReps(st *storage.Stats, ex Exercise, reps int) {
	if reps <= 0 {
		return
	}
	switch ex {
	case ExercisePushups:
		st.RepsPushups += reps
	case ExerciseSquats:
		st.RepsSquats += reps
	case ExerciseLunges:
		st.RepsLunges += reps
	case ExerciseAbs:
		st.RepsAbs += reps
	}
}

// Reps returns the cumulative counter for ex.
func Reps(st storage.Stats, ex Exercise) int {
	switch ex {
	case ExercisePushups:
		return st.RepsPushups
	case ExerciseSquats:
		return st.RepsSquats
	case ExerciseLunges:
		return st.RepsLunges
	case ExerciseAbs:
		return st.RepsAbs
	default:
		return 0
	}
}

// LoadStats returns the persisted stats aggregate.
func (s *Service) LoadStats(ctx context.Context) (*storage.Stats, error) {
	return s.repos.Stats.Get(ctx)
}

// SaveStats persists st. best_streak is raised to current_streak if needed.
func (s *Service) SaveStats(ctx context.Context, st *storage.Stats) error {
	if st.CurrentStreak > st.BestStreak {
		st.BestStreak = st.CurrentStreak
	}
	return s.repos.Stats.Update(ctx, st)
}
