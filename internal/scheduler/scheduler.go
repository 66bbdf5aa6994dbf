// Package scheduler drives periodic pipeline runs in schedule mode.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/springwalk/lexwatch/internal/logger"
)

const jobTimeout = 30 * time.Minute

// Job is one scheduled task.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner in the configured timezone.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler for the given timezone name.
func New(timezone string) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("scheduler: invalid timezone %s: %w", timezone, err)
	}
	return &Scheduler{cron: cron.New(cron.WithLocation(loc))}, nil
}

// AddJob schedules job under a cron expression such as "0 6 * * *". Each
// invocation gets its own timeout; a failing run is logged, never fatal.
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	log := logger.Log.WithField("job", name)

	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		log.Info("Starting job")
		start := time.Now()

		if err := job(ctx); err != nil {
			log.Errorf("Job failed: %v", err)
			return
		}
		log.WithField("duration", time.Since(start).String()).Info("Job completed")
	})
	if err != nil {
		return fmt.Errorf("scheduler: schedule job %s: %w", name, err)
	}

	log.WithField("schedule", schedule).Info("Added job")
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and returns a context that is done once running
// jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
