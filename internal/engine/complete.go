package engine

import (
	"context"

	"github.com/bleathingman/iron-system/internal/storage"
)

type CompleteResult struct {
	ObjectiveID    string
	Validated      bool
	XPAwarded      int
	FromPool       bool
	EliteCompleted bool
	BonusGranted   bool
	BonusXP        int
	LevelBefore    int
	LevelAfter     int
	LevelUp        bool
	Unlocked       []string
	Stats          storage.Stats
}

// Complete validates objective id and, on success, runs the follow-up
// bookkeeping: pool removal, elite consumption, the daily bonus and
// achievement evaluation. A closed gate yields Validated=false.
func (s *Service) Complete(ctx context.Context, id string) (*CompleteResult, error) {
	obj, err := s.GetObjective(ctx, id)
	if err != nil {
		return nil, err
	}
	before, err := s.LoadStats(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := LevelForTotalXP(before.TotalExp)

	res := &CompleteResult{
		ObjectiveID: id,
		LevelBefore: levelBefore,
		LevelAfter:  levelBefore,
		Stats:       *before,
	}

	v, err := s.validate(ctx, *obj)
	if err != nil {
		return nil, err
	}
	if !v.ok {
		return res, nil
	}
	res.Validated = true
	res.XPAwarded = v.xpAwarded

	// Exact-level unlocks must see the level reached before the bonus.
	if res.Unlocked, err = s.EvaluateAchievements(ctx, v.stats); err != nil {
		return nil, err
	}

	if res.FromPool, err = s.CompleteDailyObjective(ctx, id); err != nil {
		return nil, err
	}

	elite, err := s.LoadEliteDaily(ctx)
	if err != nil {
		return nil, err
	}
	if elite != nil && elite.Objective.ID == id {
		if err := s.CompleteEliteDaily(ctx); err != nil {
			return nil, err
		}
		res.EliteCompleted = true
	}

	if res.BonusXP, res.BonusGranted, err = s.GrantDailyBonusIfNeeded(ctx); err != nil {
		return nil, err
	}

	after, err := s.LoadStats(ctx)
	if err != nil {
		return nil, err
	}
	res.Stats = *after
	res.LevelAfter = LevelForTotalXP(after.TotalExp)
	res.LevelUp = res.LevelAfter > levelBefore

	if res.BonusGranted {
		more, err := s.EvaluateAchievements(ctx, *after)
		if err != nil {
			return nil, err
		}
		res.Unlocked = append(res.Unlocked, more...)
	}
	return res, nil
}
