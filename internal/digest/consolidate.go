// Package digest folds classified association records into one group per
// article URL.
package digest

import (
	"slices"

	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/textnorm"
)

// Index maps record ids to categories. Later verdicts for the same id win.
func Index(verdicts []domain.Verdict) map[string]domain.Category {
	index := make(map[string]domain.Category, len(verdicts))
	for _, v := range verdicts {
		if v.ID == "" {
			continue
		}
		index[v.ID] = domain.ParseCategory(string(v.Category))
	}
	return index
}

// Consolidate drops NULA records and records without URL, groups the rest by
// URL keeping the most severe category per entity, and sorts groups by
// publication date, newest first. Records missing from verdicts are
// unclassified; a nil verdict slice classifies nothing.
func Consolidate(records []domain.Association, verdicts []domain.Verdict) []domain.Group {
	index := Index(verdicts)

	var order []string
	groups := map[string]*domain.Group{}

	for _, rec := range records {
		category, ok := index[rec.ID]
		if !ok {
			category = domain.CategoryUnclassified
		}
		if category == domain.CategoryNone {
			continue
		}

		url := rec.Article.URL
		if url == "" {
			continue
		}

		g, ok := groups[url]
		if !ok {
			g = &domain.Group{
				URL:        url,
				Companies:  map[string]domain.Category{},
				Industries: map[string]domain.Category{},
			}
			groups[url] = g
			order = append(order, url)
		}
		fill(g, rec)

		if rec.Entity == "" {
			continue
		}
		switch rec.Kind {
		case domain.KindCompany:
			g.Companies[rec.Entity] = domain.MergeCategory(g.Companies[rec.Entity], category)
		case domain.KindIndustry:
			g.Industries[rec.Entity] = domain.MergeCategory(g.Industries[rec.Entity], category)
		}
	}

	out := make([]domain.Group, 0, len(order))
	for _, url := range order {
		g := groups[url]
		if len(g.Companies) == 0 && len(g.Industries) == 0 {
			continue
		}
		out = append(out, *g)
	}

	slices.SortStableFunc(out, func(a, b domain.Group) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return out
}

// fill sets group fields that are still empty; set fields are never overwritten.
func fill(g *domain.Group, rec domain.Association) {
	if g.Title == "" {
		g.Title = rec.Article.Title
	}
	if g.Description == "" {
		g.Description = textnorm.StripHTML(rec.Article.Body)
	}
	if g.SourceLabel == "" {
		g.SourceLabel = rec.SourceLabel
	}
	if g.PublishedAt.IsZero() {
		g.PublishedAt = rec.Article.PublishedAt
	}
}
