// Package scheduler drives periodic jobs from a single goroutine.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/theirongolddev/pulse/internal/logging"

	"go.uber.org/zap"
)

var (
	// ErrRunning is returned when jobs are registered after Run has started.
	ErrRunning = errors.New("scheduler: already running")
	// ErrBadPeriod is returned for a non-positive job period.
	ErrBadPeriod = errors.New("scheduler: period must be positive")
)

type job struct {
	name   string
	period time.Duration
	fn     func(time.Time)
	next   time.Time
	runs   int64
}

// Scheduler runs registered jobs on their own periods. Jobs never
// interleave: they are invoked one at a time from the goroutine that
// called Run.
type Scheduler struct {
	logger *zap.Logger

	mu      sync.Mutex
	jobs    []*job
	running bool
	stop    chan struct{}
	once    sync.Once
}

// New returns an empty scheduler. A nil logger discards output.
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logging.OrNop(logger),
		stop:   make(chan struct{}),
	}
}

// Every registers fn to run each period, first after one period elapses.
func (s *Scheduler) Every(name string, period time.Duration, fn func(time.Time)) error {
	if period <= 0 {
		return fmt.Errorf("%w: %s got %s", ErrBadPeriod, name, period)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("%w: cannot add %s", ErrRunning, name)
	}
	s.jobs = append(s.jobs, &job{name: name, period: period, fn: fn})
	return nil
}

// Run blocks until ctx is canceled or Stop is called. Once it returns no
// job is invoked again.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunning
	}
	s.running = true
	jobs := s.jobs
	s.mu.Unlock()

	if len(jobs) == 0 {
		select {
		case <-ctx.Done():
		case <-s.stop:
		}
		return nil
	}

	start := time.Now()
	for _, j := range jobs {
		j.next = start.Add(j.period)
		s.logger.Debug("job scheduled", zap.String("job", j.name), zap.Duration("period", j.period))
	}

	timer := time.NewTimer(time.Until(earliest(jobs)))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("scheduler stopped", zap.Error(ctx.Err()))
			return nil
		case <-s.stop:
			s.logger.Debug("scheduler stopped")
			return nil
		case now := <-timer.C:
			for _, j := range jobs {
				if now.Before(j.next) {
					continue
				}
				// A closed stop channel wins over a job that is also due.
				select {
				case <-s.stop:
					return nil
				case <-ctx.Done():
					return nil
				default:
				}
				j.fn(now)
				j.runs++
				// Slow jobs drop missed periods instead of bursting.
				for !j.next.After(now) {
					j.next = j.next.Add(j.period)
				}
			}
			timer.Reset(time.Until(earliest(jobs)))
		}
	}
}

// Stop ends Run. It is safe to call more than once and from any goroutine.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
}

// Runs reports how many times the named job has fired. It is meant to be
// read after Run returns.
func (s *Scheduler) Runs(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.name == name {
			return j.runs
		}
	}
	return 0
}

func earliest(jobs []*job) time.Time {
	t := jobs[0].next
	for _, j := range jobs[1:] {
		if j.next.Before(t) {
			t = j.next
		}
	}
	return t
}
