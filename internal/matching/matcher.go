// Package matching decides which catalog companies and industries an article
// is about and expands matches into association records.
package matching

import (
	"regexp"
	"slices"

	"NewsAlerts/internal/catalog"
	"NewsAlerts/internal/textnorm"
)

type compiledCompany struct {
	company  catalog.Company
	patterns []*regexp.Regexp
}

type compiledIndustry struct {
	name      string
	keywords  []*regexp.Regexp
	negatives []*regexp.Regexp
}

// Matcher holds whole-word patterns compiled from one catalog.
type Matcher struct {
	companies  []compiledCompany
	byName     map[string]int
	industries []compiledIndustry
}

// New compiles every company alias and industry keyword of cat.
func New(cat catalog.Catalog) *Matcher {
	m := &Matcher{
		companies:  make([]compiledCompany, 0, len(cat.Companies)),
		byName:     make(map[string]int, len(cat.Companies)),
		industries: make([]compiledIndustry, 0, len(cat.Industries)),
	}

	for _, company := range cat.Companies {
		m.byName[company.Name] = len(m.companies)
		m.companies = append(m.companies, compileCompany(company))
	}

	for _, industry := range cat.Industries {
		m.industries = append(m.industries, compiledIndustry{
			name:      industry.Name,
			keywords:  compileAll(industry.Keywords),
			negatives: compileAll(industry.NegativeKeywords),
		})
	}

	return m
}

func compileCompany(company catalog.Company) compiledCompany {
	return compiledCompany{company: company, patterns: compileAll(company.Patterns())}
}

func compileAll(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if re, ok := textnorm.WholeWord(p); ok {
			out = append(out, re)
		}
	}
	return out
}

// MatchesCompany reports whether title or body mention company by name or alias.
func (m *Matcher) MatchesCompany(title, body string, company catalog.Company) bool {
	compiled, ok := m.lookup(company)
	if !ok {
		compiled = compileCompany(company)
	}
	return compiled.matches(articleText(title, body))
}

// DetectIndustries returns, in catalog order, the industries whose keywords
// hit title or body and whose negative keywords do not.
func (m *Matcher) DetectIndustries(title, body string) []string {
	return m.industriesIn(articleText(title, body))
}

func (m *Matcher) lookup(company catalog.Company) (compiledCompany, bool) {
	idx, ok := m.byName[company.Name]
	if !ok {
		return compiledCompany{}, false
	}
	compiled := m.companies[idx]
	if !slices.Equal(compiled.company.Aliases, company.Aliases) {
		return compiledCompany{}, false
	}
	return compiled, true
}

func (m *Matcher) industriesIn(text string) []string {
	var hits []string
	for _, industry := range m.industries {
		if !anyMatch(industry.keywords, text) {
			continue
		}
		if anyMatch(industry.negatives, text) {
			continue
		}
		hits = append(hits, industry.name)
	}
	return hits
}

func (c compiledCompany) matches(text string) bool {
	return anyMatch(c.patterns, text)
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func articleText(title, body string) string {
	return textnorm.Normalize(title + " " + body)
}
