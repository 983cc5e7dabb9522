package engine

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bleathingman/iron-system/internal/storage"
)

func TestValidateFirstCompletionAndSameDayRepeat(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.SeedCatalog(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if !mustValidate(t, svc, "pushups_5") {
		t.Fatalf("first validate returned false")
	}
	st := mustStats(t, svc)
	if st.TotalExp != 10 || st.TotalValidations != 1 || st.CurrentStreak != 1 || st.BestStreak != 1 {
		t.Fatalf("stats after first validate = %+v", st)
	}
	if st.RepsPushups != 5 {
		t.Fatalf("pushups reps=%d, want 5", st.RepsPushups)
	}

	if mustValidate(t, svc, "pushups_5") {
		t.Fatalf("second validate same day returned true")
	}
	if diff := cmp.Diff(st, mustStats(t, svc)); diff != "" {
		t.Fatalf("stats changed after rejected validate (-want +got):\n%s", diff)
	}
}

func TestValidateWeeklyGateFollowsISOWeek(t *testing.T) {
	svc, clock := newTestService(t)
	seed(t, svc, weekly("run_5k", 1, 80))

	if !mustValidate(t, svc, "run_5k") {
		t.Fatalf("monday validate returned false")
	}
	clock.advanceDays(6) // Sunday, same ISO week
	if mustValidate(t, svc, "run_5k") {
		t.Fatalf("same-week validate returned true")
	}
	clock.advanceDays(1) // Monday, next ISO week
	if !mustValidate(t, svc, "run_5k") {
		t.Fatalf("next-week validate returned false")
	}
	if got := mustStats(t, svc).TotalExp; got != 160 {
		t.Fatalf("total_exp=%d, want 160", got)
	}
}

func TestValidateDailyReopensNextDay(t *testing.T) {
	svc, clock := newTestService(t)
	seed(t, svc, daily("walk_10", 1, 10))

	if !mustValidate(t, svc, "walk_10") {
		t.Fatalf("day 1 validate returned false")
	}
	clock.advanceDays(1)
	if !mustValidate(t, svc, "walk_10") {
		t.Fatalf("day 2 validate returned false")
	}
	st := mustStats(t, svc)
	if st.CurrentStreak != 2 || st.BestStreak != 2 {
		t.Fatalf("streak=%d best=%d, want 2/2", st.CurrentStreak, st.BestStreak)
	}
}

func TestStreakContinuesFromYesterday(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	seed(t, svc, daily("a", 1, 10))

	st := mustStats(t, svc)
	st.LastValidationDate = datePtr(clock.now.AddDate(0, 0, -1))
	st.CurrentStreak = 4
	st.BestStreak = 4
	if err := svc.SaveStats(ctx, &st); err != nil {
		t.Fatalf("save stats: %v", err)
	}

	if !mustValidate(t, svc, "a") {
		t.Fatalf("validate returned false")
	}
	got := mustStats(t, svc)
	if got.CurrentStreak != 5 || got.BestStreak != 5 {
		t.Fatalf("streak=%d best=%d, want 5/5", got.CurrentStreak, got.BestStreak)
	}
}

func TestStreakResetsAfterGap(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	seed(t, svc, daily("a", 1, 10))

	st := mustStats(t, svc)
	st.LastValidationDate = datePtr(clock.now.AddDate(0, 0, -2))
	st.CurrentStreak = 6
	st.BestStreak = 9
	st.ValidationsToday = 4
	st.ComboValidations = 4
	if err := svc.SaveStats(ctx, &st); err != nil {
		t.Fatalf("save stats: %v", err)
	}

	if !mustValidate(t, svc, "a") {
		t.Fatalf("validate returned false")
	}
	got := mustStats(t, svc)
	if got.CurrentStreak != 1 || got.BestStreak != 9 {
		t.Fatalf("streak=%d best=%d, want 1/9", got.CurrentStreak, got.BestStreak)
	}
	if got.ValidationsToday != 1 || got.ComboValidations != 1 {
		t.Fatalf("today=%d combo=%d, want 1/1", got.ValidationsToday, got.ComboValidations)
	}
}

func TestSameDayValidationsBuildCombo(t *testing.T) {
	svc, _ := newTestService(t)
	seed(t, svc, daily("a", 1, 10), daily("b", 1, 10), daily("c", 1, 10))

	for _, id := range []string{"a", "b", "c"} {
		if !mustValidate(t, svc, id) {
			t.Fatalf("validate %s returned false", id)
		}
	}
	st := mustStats(t, svc)
	if st.ValidationsToday != 3 || st.ComboValidations != 3 {
		t.Fatalf("today=%d combo=%d, want 3/3", st.ValidationsToday, st.ComboValidations)
	}
	if st.CurrentStreak != 1 {
		t.Fatalf("streak=%d, want 1", st.CurrentStreak)
	}
}

func TestRegisterValidationKeepsBestAboveCurrent(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 11))
	var st storage.Stats
	today := *datePtr(testStart)
	for i := 0; i < 500; i++ {
		today = today.AddDate(0, 0, rnd.IntN(4)) // 0: same day, 1: next day, 2-3: gap
		prevBest := st.BestStreak
		registerValidation(&st, today)
		if st.BestStreak < st.CurrentStreak {
			t.Fatalf("step %d: best=%d < current=%d", i, st.BestStreak, st.CurrentStreak)
		}
		if st.BestStreak < prevBest {
			t.Fatalf("step %d: best decreased %d -> %d", i, prevBest, st.BestStreak)
		}
	}
}

func TestValidateRollsBackOnStorageFailure(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seed(t, svc, daily("a", 1, 10))

	_, err := svc.db.ExecContext(ctx, `
		CREATE TRIGGER fail_progress BEFORE INSERT ON objective_progress
		BEGIN SELECT RAISE(ABORT, 'disk on fire'); END;
	`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	before := mustStats(t, svc)
	ok, err := svc.Validate(ctx, mustObjective(t, svc, "a"))
	if err == nil {
		t.Fatalf("expected storage error")
	}
	if ok {
		t.Fatalf("validate reported success on failure")
	}
	if !strings.Contains(err.Error(), "progress upsert") {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(before, mustStats(t, svc)); diff != "" {
		t.Fatalf("stats changed after failed validate (-want +got):\n%s", diff)
	}
	if o := mustObjective(t, svc, "a"); o.LastCompleted != nil {
		t.Fatalf("progress written after failed validate")
	}
}

func TestDailyXPCapClipsCredits(t *testing.T) {
	p := DefaultPolicy()
	p.DailyXPCap = 25
	svc, clock := newTestService(t, WithPolicy(p))
	seed(t, svc, daily("a", 1, 10), daily("b", 1, 10), daily("c", 1, 10), daily("d", 1, 10))

	for _, id := range []string{"a", "b", "c", "d"} {
		if !mustValidate(t, svc, id) {
			t.Fatalf("validate %s returned false", id)
		}
	}
	st := mustStats(t, svc)
	if st.TotalExp != 25 || st.ExpToday != 25 {
		t.Fatalf("total=%d today=%d, want 25/25", st.TotalExp, st.ExpToday)
	}
	if st.TotalValidations != 4 {
		t.Fatalf("validations=%d, want 4", st.TotalValidations)
	}

	clock.advanceDays(1)
	if !mustValidate(t, svc, "a") {
		t.Fatalf("next-day validate returned false")
	}
	st = mustStats(t, svc)
	if st.TotalExp != 35 || st.ExpToday != 10 {
		t.Fatalf("total=%d today=%d, want 35/10", st.TotalExp, st.ExpToday)
	}
}

func TestCanComplete(t *testing.T) {
	today := *datePtr(testStart)
	yesterday := today.AddDate(0, 0, -1) // Sunday of the previous ISO week
	tests := []struct {
		name string
		freq Frequency
		last *time.Time
		want bool
	}{
		{"daily never", FrequencyDaily, nil, true},
		{"daily today", FrequencyDaily, &today, false},
		{"daily yesterday", FrequencyDaily, &yesterday, true},
		{"weekly never", FrequencyWeekly, nil, true},
		{"weekly today", FrequencyWeekly, &today, false},
		{"weekly previous iso week", FrequencyWeekly, &yesterday, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanComplete(tt.freq, tt.last, today); got != tt.want {
				t.Fatalf("CanComplete=%v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOpenFollowsStoredFrequency(t *testing.T) {
	today := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	if storageOpen := IsOpen(storage.Objective{Frequency: "weekly", LastCompleted: &monday}, today); storageOpen {
		t.Fatalf("weekly objective done on Monday reopened on Wednesday")
	}
	if !IsOpen(storage.Objective{Frequency: "daily", LastCompleted: &monday}, today) {
		t.Fatalf("daily objective done on Monday still closed on Wednesday")
	}
	if IsOpen(storage.Objective{Frequency: "bogus", LastCompleted: &today}, today) {
		t.Fatalf("unknown frequency should gate like daily")
	}
}
