package engine

import (
	"context"
	"errors"
	"testing"
)

func TestSeedCatalogIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	n, err := svc.SeedCatalog(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(BuiltinObjectives()) {
		t.Fatalf("inserted %d, want %d", n, len(BuiltinObjectives()))
	}
	n, err = svc.SeedCatalog(ctx)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if n != 0 {
		t.Fatalf("reseed inserted %d rows", n)
	}
	var count int
	if err := svc.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM objectives`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != len(BuiltinObjectives()) {
		t.Fatalf("count=%d, want %d", count, len(BuiltinObjectives()))
	}
}

func TestSeedKeepsExistingRows(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := daily("a", 1, 10)
	first.Title = "original"
	seed(t, svc, first)

	dup := daily("a", 1, 99)
	dup.Title = "replacement"
	n, err := svc.seedObjectives(ctx, []ObjectiveDef{dup, daily("b", 1, 10)})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 1 {
		t.Fatalf("inserted %d, want 1", n)
	}
	if got := mustObjective(t, svc, "a"); got.Title != "original" || got.Value != 10 {
		t.Fatalf("existing row overwritten: %+v", got)
	}
}

func TestSeedDeduplicatesWithinBatch(t *testing.T) {
	svc, _ := newTestService(t)
	one := daily("a", 1, 10)
	one.Title = "first"
	two := daily("a", 1, 20)
	two.Title = "second"

	n, err := svc.seedObjectives(context.Background(), []ObjectiveDef{one, two})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 1 {
		t.Fatalf("inserted %d, want 1", n)
	}
	if got := mustObjective(t, svc, "a"); got.Title != "first" {
		t.Fatalf("title=%q, want first", got.Title)
	}
}

func TestSeedSkipsInvalidRows(t *testing.T) {
	svc, _ := newTestService(t)
	bad := []ObjectiveDef{
		{ID: "", Title: "no id", Category: CategoryMental, Frequency: FrequencyDaily, MinLevel: 1, Value: 10},
		{ID: "bad_cat", Title: "x", Category: "cardio", Frequency: FrequencyDaily, MinLevel: 1, Value: 10},
		{ID: "bad_freq", Title: "x", Category: CategoryMental, Frequency: "monthly", MinLevel: 1, Value: 10},
		{ID: "bad_level", Title: "x", Category: CategoryMental, Frequency: FrequencyDaily, MinLevel: 0, Value: 10},
		{ID: "bad_value", Title: "x", Category: CategoryMental, Frequency: FrequencyDaily, MinLevel: 1, Value: 0},
		daily("good", 1, 10),
	}
	n, err := svc.seedObjectives(context.Background(), bad)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 1 {
		t.Fatalf("inserted %d, want 1", n)
	}
}

func TestBuiltinCatalogIsValid(t *testing.T) {
	seen := map[string]bool{}
	weeklyAtOne := false
	for _, d := range BuiltinObjectives() {
		if err := d.validate(); err != nil {
			t.Fatalf("builtin row invalid: %v", err)
		}
		if seen[d.ID] {
			t.Fatalf("duplicate builtin id %s", d.ID)
		}
		seen[d.ID] = true
		if d.Frequency == FrequencyWeekly && d.MinLevel == 1 {
			weeklyAtOne = true
		}
	}
	if !weeklyAtOne {
		t.Fatalf("no weekly objective available at level 1")
	}
}

func TestLoadObjectivesForLevel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seed(t, svc, daily("c", 3, 10), daily("b", 1, 10), weekly("a", 2, 10), daily("z", 9, 10))

	got, err := svc.LoadObjectivesForLevel(ctx, 3)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var ids []string
	for _, o := range got {
		ids = append(ids, o.ID)
		if o.LastCompleted != nil {
			t.Fatalf("objective %s has a completion date before any validation", o.ID)
		}
	}
	want := []string{"b", "a", "c"}
	if len(ids) != len(want) {
		t.Fatalf("ids=%v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids=%v, want %v", ids, want)
		}
	}

	if _, err := svc.LoadObjectivesForLevel(ctx, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("negative level err=%v", err)
	}
	empty, err := svc.LoadObjectivesForLevel(ctx, 0)
	if err != nil {
		t.Fatalf("load level 0: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("level 0 returned %d objectives", len(empty))
	}
}

func TestGetObjectiveNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetObjective(context.Background(), "missing")
	if !errors.Is(err, ErrObjectiveNotFound) {
		t.Fatalf("err=%v, want ErrObjectiveNotFound", err)
	}
}
