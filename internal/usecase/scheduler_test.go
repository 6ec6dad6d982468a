package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsAlerts/internal/ports"
)

type manualDriver struct {
	job     func(time.Time)
	stopped bool
}

func (d *manualDriver) Start(_ context.Context, job func(time.Time)) error {
	d.job = job
	return nil
}

func (d *manualDriver) Stop(context.Context) error {
	d.stopped = true
	return nil
}

func TestSchedulerRunsPipelineOnTrigger(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{name: "mail"}
	p := NewPipeline(PipelineDeps{
		Source:    andinaSource(),
		Matcher:   andinaMatcher(),
		Notifiers: []ports.Notifier{notifier},
	}, PipelineOptions{})

	driver := &manualDriver{}
	s := NewScheduler(driver, p, nil)
	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, driver.job)

	driver.job(runAt())
	driver.job(runAt().Add(10 * time.Hour))
	assert.Len(t, notifier.messages, 2)

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSchedulerRunSurvivesCancelledContext(t *testing.T) {
	t.Parallel()

	notifier := &recordingNotifier{name: "mail"}
	p := NewPipeline(PipelineDeps{
		Source:    andinaSource(),
		Matcher:   andinaMatcher(),
		Notifiers: []ports.Notifier{notifier},
	}, PipelineOptions{})

	driver := &manualDriver{}
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, NewScheduler(driver, p, nil).Start(ctx))
	cancel()

	driver.job(runAt())
	require.Len(t, notifier.ctxErrs, 1)
	assert.NoError(t, notifier.ctxErrs[0])
}

func TestSchedulerWithoutDriver(t *testing.T) {
	t.Parallel()

	s := NewScheduler(nil, nil, nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
