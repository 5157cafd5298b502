// Package scheduler runs named jobs on cron schedules.
// Specs have six fields with seconds first, e.g. "0 0 8 * * *" for 08:00 daily.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron"

	"dailycoach/internal/platform/logger"
)

// Job is a unit of scheduled work
type Job func(ctx context.Context) error

// Scheduler wraps a cron instance bound to one time zone
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger

	mu  sync.Mutex
	ctx context.Context
}

// New создаёт планировщик в часовом поясе loc
func New(loc *time.Location, log *logger.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron: cron.NewWithLocation(loc),
		log:  log,
		ctx:  context.Background(),
	}
}

// NextRun returns the first activation of spec after t
func NextRun(spec string, after time.Time) (time.Time, error) {
	sched, err := cron.Parse(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cron %q: %w", spec, err)
	}
	return sched.Next(after), nil
}

// Add registers job under name. A run is skipped while the previous one is still going.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := cron.Parse(spec); err != nil {
		return fmt.Errorf("job %s: parse cron %q: %w", name, spec, err)
	}
	if err := s.cron.AddFunc(spec, s.wrap(name, job)); err != nil {
		return fmt.Errorf("job %s: %w", name, err)
	}
	s.log.Info("job scheduled", "job", name, "spec", spec, "tz", s.cron.Location().String())
	return nil
}

func (s *Scheduler) wrap(name string, job Job) func() {
	var running atomic.Bool
	return func() {
		if !running.CompareAndSwap(false, true) {
			s.log.Warn("job still running, skip", "job", name)
			return
		}
		defer running.Store(false)

		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.log.Error("job failed", "job", name, "error", err, "took", time.Since(start))
			return
		}
		s.log.Info("job done", "job", name, "took", time.Since(start))
	}
}

// Start runs the scheduler until ctx is cancelled. Jobs receive ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
		s.log.Info("scheduler stopped")
	}()
}
