package engine

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/bleathingman/iron-system/internal/storage"
)

// EliteOffer is today's elite objective.
type EliteOffer struct {
	Objective storage.Objective
	Date      time.Time
}

// GenerateDailyPool draws today's pool of count objectives unlocked at
// level and still open today. It is a no-op once the pool was generated today and reports
// whether a new draw happened.
func (s *Service) GenerateDailyPool(ctx context.Context, level, count int) (bool, error) {
	if err := checkLevel(level); err != nil {
		return false, err
	}
	if count <= 0 {
		return false, ParamError{Param: "count", Value: count}
	}

	today := s.Today()
	var picked []string
	generated := false
	err := s.withTx(ctx, func(r *storage.Repos) error {
		marker, err := r.Markers.Date(ctx, storage.MarkerDailyPoolDate)
		if err != nil {
			return err
		}
		if sameDay(marker, today) {
			return nil
		}

		if err := r.DailyPool.Clear(ctx); err != nil {
			return err
		}
		eligible, err := r.Objectives.ListForLevel(ctx, level)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(eligible))
		for _, o := range eligible {
			if IsOpen(o, today) {
				ids = append(ids, o.ID)
			}
		}
		picked = sampleIDs(s.rnd, ids, count)
		for _, id := range picked {
			if err := r.DailyPool.Add(ctx, id); err != nil {
				return err
			}
		}
		if err := r.Markers.SetInt(ctx, storage.MarkerDailyPoolSize, len(picked)); err != nil {
			return err
		}
		if err := r.Markers.SetDate(ctx, storage.MarkerDailyPoolDate, today); err != nil {
			return err
		}
		generated = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if generated {
		s.log.Info("daily pool generated",
			zap.String("date", today.Format(storage.DateLayout)),
			zap.Int("level", level),
			zap.Strings("objectives", picked))
	} else {
		s.log.Debug("daily pool already generated today")
	}
	return generated, nil
}

// sampleIDs draws min(k, len(ids)) distinct ids uniformly (partial
// Fisher-Yates on a copy).
func sampleIDs(rnd Rand, ids []string, k int) []string {
	pool := slices.Clone(ids)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + rnd.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// LoadDailyObjectives returns today's remaining pooled objectives.
func (s *Service) LoadDailyObjectives(ctx context.Context) ([]storage.Objective, error) {
	return s.repos.DailyPool.ListObjectives(ctx)
}

// CompleteDailyObjective drops id from the pool and reports whether it was pooled.
func (s *Service) CompleteDailyObjective(ctx context.Context, id string) (bool, error) {
	removed, err := s.repos.DailyPool.Remove(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		s.log.Debug("daily objective completed", zap.String("objective", id))
	}
	return removed, nil
}

// GenerateEliteDaily picks one weekly objective unlocked at level and not
// yet done this week as today's elite. Nothing is drawn when today's elite exists or was already consumed.
func (s *Service) GenerateEliteDaily(ctx context.Context, level int) (bool, error) {
	if err := checkLevel(level); err != nil {
		return false, err
	}

	today := s.Today()
	var pickedID string
	err := s.withTx(ctx, func(r *storage.Repos) error {
		cur, err := r.Elite.Get(ctx)
		if err != nil {
			return err
		}
		if cur != nil && cur.Date.Equal(today) {
			return nil
		}
		marker, err := r.Markers.Date(ctx, storage.MarkerEliteDate)
		if err != nil {
			return err
		}
		if sameDay(marker, today) {
			return nil
		}

		if err := r.Elite.Clear(ctx); err != nil {
			return err
		}
		eligible, err := r.Objectives.ListForLevel(ctx, level)
		if err != nil {
			return err
		}
		var weekly []storage.Objective
		for _, o := range eligible {
			if parseStoredFrequency(o.Frequency) == FrequencyWeekly && IsOpen(o, today) {
				weekly = append(weekly, o)
			}
		}
		if len(weekly) == 0 {
			return nil
		}

		pick := weekly[s.rnd.IntN(len(weekly))]
		if err := r.Elite.Set(ctx, pick.ID, today); err != nil {
			return err
		}
		if err := r.Markers.SetDate(ctx, storage.MarkerEliteDate, today); err != nil {
			return err
		}
		pickedID = pick.ID
		return nil
	})
	if err != nil {
		return false, err
	}
	if pickedID == "" {
		return false, nil
	}
	s.log.Info("elite objective generated",
		zap.String("date", today.Format(storage.DateLayout)),
		zap.String("objective", pickedID))
	return true, nil
}

// LoadEliteDaily returns today's elite, or nil when none is on offer.
func (s *Service) LoadEliteDaily(ctx context.Context) (*EliteOffer, error) {
	e, err := s.repos.Elite.Get(ctx)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.Date.Equal(s.Today()) {
		return nil, nil
	}
	o, err := s.repos.Objectives.Get(ctx, e.ObjectiveID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, nil
	}
	return &EliteOffer{Objective: *o, Date: e.Date}, nil
}

// CompleteEliteDaily consumes today's elite slot.
func (s *Service) CompleteEliteDaily(ctx context.Context) error {
	return s.repos.Elite.Clear(ctx)
}

// GrantDailyBonusIfNeeded pays the daily bonus once the day's pool is
// drained. It returns the amount credited and whether the bonus was paid
// by this call.
func (s *Service) GrantDailyBonusIfNeeded(ctx context.Context) (int, bool, error) {
	today := s.Today()
	amount := 0
	granted := false
	err := s.withTx(ctx, func(r *storage.Repos) error {
		poolDate, err := r.Markers.Date(ctx, storage.MarkerDailyPoolDate)
		if err != nil {
			return err
		}
		if !sameDay(poolDate, today) {
			return nil
		}
		drawn, err := r.Markers.Int(ctx, storage.MarkerDailyPoolSize)
		if err != nil {
			return err
		}
		if drawn == 0 {
			return nil
		}
		remaining, err := r.DailyPool.Count(ctx)
		if err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		bonusDate, err := r.Markers.Date(ctx, storage.MarkerBonusDate)
		if err != nil {
			return err
		}
		if sameDay(bonusDate, today) {
			return nil
		}

		st, err := r.Stats.Get(ctx)
		if err != nil {
			return err
		}
		amount = s.creditExp(st, s.policy.DailyBonusXP, today)
		if err := r.Stats.Update(ctx, st); err != nil {
			return err
		}
		if err := r.Markers.SetDate(ctx, storage.MarkerBonusDate, today); err != nil {
			return err
		}
		granted = true
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	if granted {
		s.log.Info("daily bonus granted", zap.Int("xp", amount))
	}
	return amount, granted, nil
}

type TickResult struct {
	PoolGenerated  bool
	EliteGenerated bool
}

// Tick runs day-rollover housekeeping for level. Repeated ticks within one
// day do nothing after the first.
func (s *Service) Tick(ctx context.Context, level int) (TickResult, error) {
	var res TickResult
	var err error
	if res.PoolGenerated, err = s.GenerateDailyPool(ctx, level, s.policy.DailyPoolSize); err != nil {
		return res, err
	}
	if res.EliteGenerated, err = s.GenerateEliteDaily(ctx, level); err != nil {
		return res, err
	}
	return res, nil
}
