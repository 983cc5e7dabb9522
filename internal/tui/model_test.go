package tui

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bleathingman/iron-system/internal/engine"
	"github.com/bleathingman/iron-system/internal/storage"
)

func newTestBoard(t *testing.T) boardModel {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	svc := engine.NewService(db,
		engine.WithClock(func() time.Time { return now }),
		engine.WithLocation(time.UTC),
		engine.WithRand(rand.New(rand.NewPCG(7, 7))),
	)
	if _, err := svc.SeedCatalog(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return newBoardModel(ctx, svc)
}

func update(t *testing.T, m boardModel, msg tea.Msg) (boardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(boardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func TestBoardLoadsPoolAndElite(t *testing.T) {
	m := newTestBoard(t)
	m, _ = update(t, m, m.loadCmd()())

	if m.err != nil {
		t.Fatalf("load: %v", m.err)
	}
	if len(m.pool) != 3 {
		t.Fatalf("pool=%d objectives, want 3", len(m.pool))
	}
	if m.elite == nil {
		t.Fatalf("expected an elite objective at level 1")
	}
	view := m.View()
	for _, want := range []string{"Iron System | Level 1", "Daily pool", "Elite", "Objectives"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBoardCompleteSelected(t *testing.T) {
	m := newTestBoard(t)
	m, _ = update(t, m, m.loadCmd()())

	first := m.rows()[0].obj.ID
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	if cmd == nil {
		t.Fatalf("expected a complete command")
	}
	m, cmd = update(t, m, cmd())
	if !strings.Contains(m.lastLog, "Completed "+first) {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
	m, _ = update(t, m, cmd())

	for _, o := range m.pool {
		if o.ID == first {
			t.Fatalf("%s still in the pool after completion", first)
		}
	}
	if m.stats.TotalValidations != 1 {
		t.Fatalf("validations=%d, want 1", m.stats.TotalValidations)
	}
}

func TestBoardSelectionStaysInRange(t *testing.T) {
	m := newTestBoard(t)
	m, _ = update(t, m, m.loadCmd()())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.selected != 0 {
		t.Fatalf("selected=%d after moving up from the top", m.selected)
	}
	n := len(m.rows())
	for i := 0; i < n+3; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	}
	if m.selected != n-1 {
		t.Fatalf("selected=%d, want %d", m.selected, n-1)
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(50, 100, 10); got != "[#####-----]" {
		t.Fatalf("progressBar=%q", got)
	}
	if got := progressBar(500, 100, 4); got != "[####]" {
		t.Fatalf("progressBar overflow=%q", got)
	}
}
