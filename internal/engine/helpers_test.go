package engine

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/bleathingman/iron-system/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

// Monday 2 March 2026, ISO week 10.
var testStart = time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*Service, *fakeClock) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	clock := &fakeClock{now: testStart}
	base := []Option{
		WithClock(clock.Now),
		WithLocation(time.UTC),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	}
	svc := NewService(db, append(base, opts...)...)
	return svc, clock
}

func seed(t *testing.T, svc *Service, defs ...ObjectiveDef) {
	t.Helper()
	if _, err := svc.seedObjectives(context.Background(), defs); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func daily(id string, minLevel, value int) ObjectiveDef {
	return ObjectiveDef{ID: id, Title: id, Category: CategoryDiscipline, Frequency: FrequencyDaily, MinLevel: minLevel, Value: value}
}

func weekly(id string, minLevel, value int) ObjectiveDef {
	return ObjectiveDef{ID: id, Title: id, Category: CategoryEndurance, Frequency: FrequencyWeekly, MinLevel: minLevel, Value: value}
}

func mustObjective(t *testing.T, svc *Service, id string) storage.Objective {
	t.Helper()
	o, err := svc.GetObjective(context.Background(), id)
	if err != nil {
		t.Fatalf("get objective %s: %v", id, err)
	}
	return *o
}

func mustStats(t *testing.T, svc *Service) storage.Stats {
	t.Helper()
	st, err := svc.LoadStats(context.Background())
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	return *st
}

func mustValidate(t *testing.T, svc *Service, id string) bool {
	t.Helper()
	ok, err := svc.Validate(context.Background(), mustObjective(t, svc, id))
	if err != nil {
		t.Fatalf("validate %s: %v", id, err)
	}
	return ok
}

func datePtr(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
