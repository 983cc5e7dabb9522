package engine

import (
	"context"
	"database/sql"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/bleathingman/iron-system/internal/storage"
)

// Rand is the random source used for pool and elite draws. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Policy holds the tunable scheduler and progression numbers.
type Policy struct {
	DailyPoolSize int
	DailyBonusXP  int
	// DailyXPCap clips XP credited per calendar day; 0 disables the cap.
	DailyXPCap int
	DailyGoal  int
}

func DefaultPolicy() Policy {
	return Policy{
		DailyPoolSize: 3,
		DailyBonusXP:  50,
		DailyXPCap:    0,
		DailyGoal:     100,
	}
}

type Service struct {
	db     *sql.DB
	repos  *storage.Repos
	log    *zap.Logger
	now    func() time.Time
	loc    *time.Location
	rnd    Rand
	policy Policy
}

type Option func(*Service)

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone whose calendar days drive every gate.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithRand(r Rand) Option {
	return func(s *Service) {
		if r != nil {
			s.rnd = r
		}
	}
}

func WithPolicy(p Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:     db,
		repos:  storage.NewRepos(db),
		log:    zap.NewNop(),
		now:    time.Now,
		loc:    time.Local,
		rnd:    globalRand{},
		policy: DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Repos() *storage.Repos { return s.repos }
func (s *Service) Policy() Policy        { return s.policy }

// Today returns the current calendar date as midnight UTC, the form every
// stored date uses.
func (s *Service) Today() time.Time {
	t := s.now().In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Service) withTx(ctx context.Context, fn func(r *storage.Repos) error) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(storage.NewRepos(tx))
	})
}

func sameDay(d *time.Time, today time.Time) bool {
	return d != nil && d.Equal(today)
}
