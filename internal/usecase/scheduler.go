package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsAlerts/internal/logging"
	"NewsAlerts/internal/ports"
)

// Scheduler wires the cron driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scheduler{driver: driver, pipeline: pipeline, logger: logger}
}

// Start registers the pipeline with the provided scheduler. Run errors are
// logged; the next tick runs regardless. A run in flight when ctx is
// cancelled finishes; Stop bounds how long the caller waits for it.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	runCtx := context.WithoutCancel(ctx)
	job := func(trigger time.Time) {
		if _, err := s.pipeline.Run(runCtx, trigger); err != nil {
			s.logger.Error("scheduled run failed", "trigger", trigger, "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
