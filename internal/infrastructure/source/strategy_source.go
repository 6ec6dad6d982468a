package source

import (
	"context"
	"log/slog"

	"github.com/patrickmn/go-cache"

	"NewsAlerts/internal/config"
	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/ports"
	"NewsAlerts/internal/scanner"
)

// StrategySource implements ArticleSource via registered scanner strategies.
// Each host is scanned at most once between Reset calls.
type StrategySource struct {
	registry *scanner.Registry
	sources  []config.SourceConfig
	maxItems int
	cache    *cache.Cache
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

type cachedScan struct {
	articles []domain.Article
	warning  *domain.Warning
}

// NewStrategySource wires scanner registry with config-defined sources.
func NewStrategySource(reg *scanner.Registry, sources []config.SourceConfig, maxItems int, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sources:  sources,
		maxItems: maxItems,
		cache:    cache.New(cache.NoExpiration, 0),
		logger:   log,
	}
}

// Reset drops every cached scan so the next Fetch hits the scanners again.
func (s *StrategySource) Reset() {
	s.cache.Flush()
}

// Fetch scans every configured source in priority order.
func (s *StrategySource) Fetch(ctx context.Context, window ports.Window) ([]domain.SourceArticles, []domain.Warning) {
	s.debug("fetch window", "sources", len(s.sources), "start", window.Start, "end", window.End)

	batches := make([]domain.SourceArticles, 0, len(s.sources))
	var warnings []domain.Warning

	for _, src := range s.sources {
		base := NormalizeHost(src.Host)
		scan := s.scan(ctx, base, src, window)
		if scan.warning != nil {
			warnings = append(warnings, *scan.warning)
		}

		label := src.Label
		if label == "" {
			label = base
		}
		batches = append(batches, domain.SourceArticles{
			Host:     base,
			Label:    label,
			Articles: scan.articles,
		})
	}

	return batches, warnings
}

func (s *StrategySource) scan(ctx context.Context, base string, src config.SourceConfig, window ports.Window) cachedScan {
	if cached, ok := s.cache.Get(base); ok {
		return cached.(cachedScan)
	}

	result := s.scanUncached(ctx, base, src, window)
	s.cache.Set(base, result, cache.NoExpiration)
	return result
}

func (s *StrategySource) scanUncached(ctx context.Context, base string, src config.SourceConfig, window ports.Window) cachedScan {
	fail := func(err error) cachedScan {
		if s.logger != nil {
			s.logger.Warn("source disabled for this run", "source", base, "error", err)
		}
		return cachedScan{warning: &domain.Warning{Source: base, Message: err.Error()}}
	}

	if s.registry == nil {
		return fail(errRegistryMissing)
	}
	strategy, err := s.registry.Resolve(src.Scanner)
	if err != nil {
		return fail(err)
	}

	raw, err := strategy.Scan(ctx, scanner.Request{
		Host:     base,
		Start:    window.Start,
		End:      window.End,
		MaxItems: s.maxItems,
		Options:  src.Options,
	})
	if err != nil {
		return fail(err)
	}

	articles := collect(base, raw, window)
	s.debug("articles cached", "source", base, "scanned", len(raw), "kept", len(articles))
	return cachedScan{articles: articles}
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
