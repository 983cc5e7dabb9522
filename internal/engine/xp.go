package engine

import (
	"time"

	"github.com/bleathingman/iron-system/internal/storage"
)

// XPPerLevel is the flat width of every level.
const XPPerLevel = 100

// LevelForTotalXP returns floor(totalXP / 100) + 1.
func LevelForTotalXP(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}
	return totalXP/XPPerLevel + 1
}

// XPInLevel is the progress inside the current level.
func XPInLevel(totalXP int) int {
	if totalXP <= 0 {
		return 0
	}
	return totalXP % XPPerLevel
}

// XPRequiredForLevel returns the total XP threshold of level.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * XPPerLevel
}

// DailyProgressPercent maps XP earned today onto 0..100 against goal.
func DailyProgressPercent(expToday, goal int) int {
	if goal <= 0 || expToday <= 0 {
		return 0
	}
	p := expToday * 100 / goal
	if p > 100 {
		return 100
	}
	return p
}

// DailyProgress reports today's gauge for st; XP from an earlier day counts as zero.
func (s *Service) DailyProgress(st *storage.Stats) int {
	if st == nil || !sameDay(st.LastExpDate, s.Today()) {
		return 0
	}
	return DailyProgressPercent(st.ExpToday, s.policy.DailyGoal)
}

// creditExp is the single path XP enters Stats through. It rolls the daily
// ledger over on a new date, applies the optional cap and returns the
// amount actually credited.
func (s *Service) creditExp(st *storage.Stats, amount int, today time.Time) int {
	if !sameDay(st.LastExpDate, today) {
		d := today
		st.ExpToday = 0
		st.LastExpDate = &d
	}
	if limit := s.policy.DailyXPCap; limit > 0 {
		remaining := limit - st.ExpToday
		if remaining < 0 {
			remaining = 0
		}
		if amount > remaining {
			amount = remaining
		}
	}
	if amount <= 0 {
		return 0
	}
	st.TotalExp += amount
	st.ExpToday += amount
	return amount
}
