package matching

import (
	"fmt"

	"NewsAlerts/internal/domain"
)

// DefaultLimit caps the records emitted per company in one run.
const DefaultLimit = 100

// Options tunes item expansion.
type Options struct {
	// Limit is the per-company budget shared by company and industry
	// records. Zero or negative disables the cap.
	Limit int
	// IndustryMustMatch drops article/company pairs with no detected industry.
	IndustryMustMatch bool
}

// Expand walks companies in catalog order and, for each, the articles of every
// source in priority order. Each match emits one company record followed by
// one industry record per detected industry until the company budget is spent.
// Articles are not ranked before truncation: the cap keeps the first records
// in source then article order.
func (m *Matcher) Expand(sources []domain.SourceArticles, opts Options) []domain.Association {
	prepared := prepare(sources)

	var records []domain.Association
	for i, company := range m.companies {
		records = m.expandCompany(records, i+1, company, prepared, opts)
	}
	return records
}

type preparedArticle struct {
	article domain.Article
	label   string
	text    string
}

func prepare(sources []domain.SourceArticles) [][]preparedArticle {
	out := make([][]preparedArticle, 0, len(sources))
	for _, src := range sources {
		label := src.Label
		if label == "" {
			label = src.Host
		}

		batch := make([]preparedArticle, 0, len(src.Articles))
		for _, art := range src.Articles {
			if art.URL == "" {
				continue
			}
			batch = append(batch, preparedArticle{
				article: art,
				label:   label,
				text:    articleText(art.Title, art.Body),
			})
		}
		out = append(out, batch)
	}
	return out
}

func (m *Matcher) expandCompany(records []domain.Association, index int, company compiledCompany, sources [][]preparedArticle, opts Options) []domain.Association {
	seq := 0
	exhausted := func() bool {
		return opts.Limit > 0 && seq >= opts.Limit
	}
	emit := func(p preparedArticle, kind domain.EntityKind, entity string) {
		seq++
		suffix := "E"
		if kind == domain.KindIndustry {
			suffix = "I"
		}
		records = append(records, domain.Association{
			ID:          fmt.Sprintf("%d-%d-%s", index, seq, suffix),
			Article:     p.article,
			Kind:        kind,
			Entity:      entity,
			Company:     company.company.Name,
			SourceLabel: p.label,
		})
	}

	for _, batch := range sources {
		for _, p := range batch {
			if !company.matches(p.text) {
				continue
			}

			industries := m.industriesIn(p.text)
			if opts.IndustryMustMatch && len(industries) == 0 {
				continue
			}

			emit(p, domain.KindCompany, company.company.Name)
			if exhausted() {
				return records
			}

			for _, industry := range industries {
				emit(p, domain.KindIndustry, industry)
				if exhausted() {
					return records
				}
			}
		}
	}

	return records
}
