package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"NewsAlerts/internal/config"
	"NewsAlerts/internal/digest"
	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/logging"
	"NewsAlerts/internal/matching"
	"NewsAlerts/internal/ports"
	"NewsAlerts/internal/report"
)

const classifierWarningSource = "clasificador"

var errNoSource = errors.New("pipeline has no article source")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.ArticleSource
	Matcher    *matching.Matcher
	Classifier ports.Classifier
	Notifiers  []ports.Notifier
	Logger     *slog.Logger
}

// PipelineOptions tunes one run.
type PipelineOptions struct {
	Window   config.WindowConfig
	Matching matching.Options
	Report   report.Options
	// DryRun builds the digest without delivering it.
	DryRun bool
}

// Pipeline implements the fetch, match, classify, consolidate and deliver
// workflow of one alert run.
type Pipeline struct {
	source     ports.ArticleSource
	matcher    *matching.Matcher
	classifier ports.Classifier
	notifiers  []ports.Notifier
	opts       PipelineOptions
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps, opts PipelineOptions) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Pipeline{
		source:     deps.Source,
		matcher:    deps.Matcher,
		classifier: deps.Classifier,
		notifiers:  deps.Notifiers,
		opts:       opts,
		logger:     logger,
	}
}

// Run executes one alert run whose window closes at now. Source and
// classifier problems degrade the digest into warnings; only delivery and
// rendering failures are returned.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (report.Digest, error) {
	if p.source == nil || p.matcher == nil {
		return report.Digest{}, errNoSource
	}

	if loc := p.opts.Report.Location; loc != nil {
		now = now.In(loc)
	}
	log := p.logger.With("run_id", uuid.NewString())

	hours := HoursBack(now, p.opts.Window)
	window := WindowEnding(now, hours)
	log.Info("run started", "hours_back", hours, "start", window.Start, "end", window.End)

	p.source.Reset()
	batches, warnings := p.source.Fetch(ctx, window)
	for _, batch := range batches {
		log.Debug("source fetched", "source", batch.Label, "articles", len(batch.Articles))
	}

	records := p.matcher.Expand(batches, p.opts.Matching)
	log.Info("records expanded", "records", len(records))

	verdicts, classifyWarnings := p.classify(ctx, log, records)
	warnings = append(warnings, classifyWarnings...)

	groups := digest.Consolidate(records, verdicts)
	if log.Enabled(ctx, slog.LevelDebug) {
		for label, count := range countBySource(groups) {
			log.Debug("groups per source", "source", label, "groups", count)
		}
	}

	reportOpts := p.opts.Report
	reportOpts.HoursBack = hours
	result := report.New(groups, warnings, now, reportOpts)
	log.Info("digest built", "groups", len(result.Groups), "warnings", len(result.Warnings))

	if p.opts.DryRun {
		return result, nil
	}
	if err := p.deliver(ctx, log, result); err != nil {
		return result, err
	}
	return result, nil
}

func (p *Pipeline) classify(ctx context.Context, log *slog.Logger, records []domain.Association) ([]domain.Verdict, []domain.Warning) {
	if len(records) == 0 {
		return nil, nil
	}
	if p.classifier == nil {
		log.Warn("classifier disabled, records left unclassified", "records", len(records))
		return nil, []domain.Warning{{
			Source:  classifierWarningSource,
			Message: "clasificación deshabilitada: noticias marcadas SIN CLASIFICAR",
		}}
	}

	verdicts, err := p.classifier.Classify(ctx, records)
	if err != nil {
		log.Warn("classification degraded", "verdicts", len(verdicts), "records", len(records), "error", err)
		return verdicts, []domain.Warning{{
			Source:  classifierWarningSource,
			Message: fmt.Sprintf("clasificación incompleta (%d de %d): %v", len(verdicts), len(records), err),
		}}
	}
	log.Info("records classified", "verdicts", len(verdicts))
	return verdicts, nil
}

func (p *Pipeline) deliver(ctx context.Context, log *slog.Logger, d report.Digest) error {
	if len(p.notifiers) == 0 {
		log.Warn("no notifiers configured, digest not delivered")
		return nil
	}

	html, err := d.HTML()
	if err != nil {
		return err
	}
	msg := ports.Message{Subject: d.Subject, Text: d.Text(), HTML: html}

	var errs []error
	for _, n := range p.notifiers {
		if err := n.Deliver(ctx, msg); err != nil {
			log.Error("delivery failed", "notifier", n.Name(), "error", err)
			errs = append(errs, fmt.Errorf("deliver via %s: %w", n.Name(), err))
			continue
		}
		log.Info("digest delivered", "notifier", n.Name())
	}
	return errors.Join(errs...)
}

func countBySource(groups []domain.Group) map[string]int {
	counts := make(map[string]int)
	for _, g := range groups {
		counts[g.SourceLabel]++
	}
	return counts
}
