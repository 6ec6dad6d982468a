package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"NewsAlerts/internal/ports"
)

// CronScheduler fires the job at every configured cron expression, evaluated
// in a fixed time zone.
type CronScheduler struct {
	specs    []string
	location *time.Location
	logger   *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler for standard five-field expressions.
func NewCronScheduler(specs []string, location *time.Location, logger *slog.Logger) *CronScheduler {
	if location == nil {
		location = time.UTC
	}
	return &CronScheduler{specs: specs, location: location, logger: logger}
}

// Validate parses every expression without starting anything.
func (c *CronScheduler) Validate() error {
	if len(c.specs) == 0 {
		return errors.New("no cron expressions configured")
	}
	var errs []error
	for _, spec := range c.specs {
		if _, err := cron.ParseStandard(spec); err != nil {
			errs = append(errs, fmt.Errorf("cron %q: %w", spec, err))
		}
	}
	return errors.Join(errs...)
}

// Start registers the job and returns immediately. Runs never overlap: a tick
// that arrives while the previous run is active is skipped. The caller owns
// shutdown through Stop.
func (c *CronScheduler) Start(_ context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if err := c.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}

	runner := cron.New(
		cron.WithLocation(c.location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	for _, spec := range c.specs {
		if _, err := runner.AddFunc(spec, func() { job(time.Now().In(c.location)) }); err != nil {
			return fmt.Errorf("cron %q: %w", spec, err)
		}
	}
	runner.Start()
	c.cron = runner

	if c.logger != nil {
		for _, entry := range runner.Entries() {
			c.logger.Info("run scheduled", "next", entry.Next)
		}
	}
	return nil
}

// Stop halts scheduling and waits for an in-flight run until ctx expires.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	runner := c.cron
	c.cron = nil
	c.mu.Unlock()

	if runner == nil {
		return nil
	}

	select {
	case <-runner.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the earliest upcoming fire time after now.
func (c *CronScheduler) Next(now time.Time) (time.Time, error) {
	var next time.Time
	for _, spec := range c.specs {
		schedule, err := cron.ParseStandard(spec)
		if err != nil {
			return time.Time{}, fmt.Errorf("cron %q: %w", spec, err)
		}
		candidate := schedule.Next(now.In(c.location))
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}
	return next, nil
}
