package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsAlerts/internal/catalog"
	"NewsAlerts/internal/config"
	"NewsAlerts/internal/infrastructure/llm"
	"NewsAlerts/internal/infrastructure/mail"
	"NewsAlerts/internal/infrastructure/scheduler"
	"NewsAlerts/internal/infrastructure/source"
	"NewsAlerts/internal/infrastructure/telegram"
	"NewsAlerts/internal/logging"
	"NewsAlerts/internal/matching"
	"NewsAlerts/internal/ports"
	"NewsAlerts/internal/report"
	"NewsAlerts/internal/scanner"
	"NewsAlerts/internal/usecase"
)

// Options adjusts how the application runs.
type Options struct {
	DryRun bool
}

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	catalog   catalog.Catalog
	pipeline  *usecase.Pipeline
	scheduler *scheduler.CronScheduler
	logger    *slog.Logger
}

// New builds the application: catalog, sources, classifier, notifiers and
// the pipeline over them.
func New(cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	registry := scanner.NewRegistry()
	registry.Register(source.NewEventRegistryScanner(cfg.EventRegistry, nil, logging.Component(baseLogger, "scanner.eventregistry")))
	registry.Register(source.NewRSSScanner(nil))

	src := source.NewStrategySource(registry, cfg.Sources, cfg.EventRegistry.MaxItems, logging.Component(baseLogger, "source"))

	notifiers, err := buildNotifiers(cfg, baseLogger, opts.DryRun)
	if err != nil {
		return nil, err
	}

	var classifier ports.Classifier
	if cfg.Classifier.Active() {
		classifier = llm.NewClassifier(cfg.Classifier, nil, logging.Component(baseLogger, "classifier"))
	} else {
		baseLogger.Warn("classifier inactive, records will be left unclassified")
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     src,
		Matcher:    matching.New(cat),
		Classifier: classifier,
		Notifiers:  notifiers,
		Logger:     logging.Component(baseLogger, "pipeline"),
	}, usecase.PipelineOptions{
		Window: cfg.Window,
		Matching: matching.Options{
			Limit:             cfg.Matching.DomainLimit,
			IndustryMustMatch: cfg.Matching.IndustryMustMatch,
		},
		Report: report.Options{
			SubjectPrefix: cfg.Mail.SubjectPrefix,
			Location:      cfg.Scheduler.Location(),
		},
		DryRun: opts.DryRun,
	})

	return &Application{
		cfg:       cfg,
		catalog:   cat,
		pipeline:  pipeline,
		scheduler: scheduler.NewCronScheduler(cfg.Scheduler.CronExpressions, cfg.Scheduler.Location(), logging.Component(baseLogger, "scheduler")),
		logger:    baseLogger,
	}, nil
}

// Catalog exposes the companies and industries the application matches.
func (a *Application) Catalog() catalog.Catalog {
	return a.catalog
}

// Run performs a single pipeline execution closing at the current time.
func (a *Application) Run(ctx context.Context) (report.Digest, error) {
	now := time.Now().In(a.cfg.Scheduler.Location())
	return a.pipeline.Run(ctx, now)
}

// Serve runs the pipeline on the configured schedule until ctx is done.
func (a *Application) Serve(ctx context.Context) error {
	sched := usecase.NewScheduler(a.scheduler, a.pipeline, logging.Component(a.logger, "usecase.scheduler"))
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	if next, err := a.scheduler.Next(time.Now()); err == nil {
		a.logger.Info("scheduler started", "timezone", a.cfg.Scheduler.Timezone, "next_run", next)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	a.logger.Info("scheduler stopped")
	return nil
}

func loadCatalog(cfg config.CatalogConfig) (catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Path)
	if err != nil {
		return catalog.Catalog{}, err
	}
	return cat, nil
}

// buildNotifiers returns the delivery channels. Mail is mandatory unless
// the run is dry; Telegram is added when configured.
func buildNotifiers(cfg config.Config, logger *slog.Logger, dryRun bool) ([]ports.Notifier, error) {
	if dryRun {
		return nil, nil
	}
	if err := cfg.Mail.Validate(); err != nil {
		return nil, fmt.Errorf("mail delivery: %w", err)
	}

	notifiers := []ports.Notifier{mail.NewNotifier(cfg.Mail, logging.Component(logger, "notifier.mail"))}
	if cfg.Telegram.Enabled() {
		notifiers = append(notifiers, telegram.NewNotifier(cfg.Telegram))
	}
	return notifiers, nil
}
