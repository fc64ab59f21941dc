package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is one report run.
type Job func(ctx context.Context) error

// Scheduler runs a job on a fixed interval. Runs never overlap: a trigger
// that fires while a run is in progress is skipped.
type Scheduler struct {
	Cron *cron.Cron
	Job  Job
	Ctx  context.Context

	mu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, job Job) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithLogger(cronLogger{})),
		Job:  job,
		Ctx:  ctx,
	}
}

// Register schedules the job every interval, using the "@every" spec.
func (s *Scheduler) Register(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", interval)
	}
	spec := "@every " + interval.String()
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register %q: %w", spec, err)
	}
	log.Info().Str("spec", spec).Msg("report job registered")
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	// A RunNow started outside cron holds the lock until it returns.
	s.mu.Lock()
	s.mu.Unlock()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the job immediately unless a run is already in progress.
// It reports whether the job ran.
func (s *Scheduler) RunNow() bool {
	if !s.mu.TryLock() {
		log.Warn().Msg("previous run still in progress, skipping")
		return false
	}
	defer s.mu.Unlock()

	if s.Ctx.Err() != nil {
		return false
	}
	start := time.Now()
	log.Info().Msg("running report job")
	if err := s.Job(s.Ctx); err != nil {
		log.Error().Err(err).Dur("took", time.Since(start)).Msg("report job failed")
		return true
	}
	log.Info().Dur("took", time.Since(start)).Msg("report job finished")
	return true
}

// cronLogger routes cron's own messages to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
