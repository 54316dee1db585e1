package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler owns one cron instance and its registered jobs. Start and Stop
// are safe to call repeatedly; only the first call of each has an effect.
type Scheduler struct {
	mu      sync.Mutex
	cron    *cron.Cron
	jobs    map[string]cron.EntryID
	running bool
	logger  zerolog.Logger
}

// NewScheduler creates a stopped scheduler. Jobs that are still running when
// their next tick fires are skipped rather than overlapped.
func NewScheduler(logger zerolog.Logger) *Scheduler {
	logger = logger.With().Str("component", "scheduler").Logger()
	cronLogger := cron.PrintfLogger(&logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		jobs:   make(map[string]cron.EntryID),
		logger: logger,
	}
}

// Register adds a named job. Registering the same name twice is an error.
func (s *Scheduler) Register(name, spec string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("register %s task: already registered", name)
	}
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("register %s task: %w", name, err)
	}
	s.jobs[name] = id
	s.logger.Info().Str("job", name).Str("spec", spec).Msg("task registered")
	return nil
}

// Registered reports whether a job with the given name exists.
func (s *Scheduler) Registered(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[name]
	return ok
}

// Start starts the cron scheduler. It returns false if it was already running.
func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.cron.Start()
	s.running = true
	s.logger.Info().Msg("scheduler started")
	return true
}

// Stop stops the scheduler and waits for running jobs to finish. It returns
// false if the scheduler was not running.
func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	s.running = false
	ctx := s.cron.Stop()
	s.mu.Unlock()

	<-ctx.Done()
	s.logger.Info().Msg("scheduler stopped")
	return true
}

// Running reports whether the scheduler is started.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
