package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsAlerts/internal/catalog"
	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/report"
)

func TestRootCommandListsSubcommands(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{"run", "serve", "catalog", "version"} {
		assert.Contains(t, out.String(), name)
	}
}

func TestRenderDigest(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	d := report.New([]domain.Group{{
		URL:         "u1",
		Title:       "Coca-Cola Andina reporta utilidades",
		SourceLabel: "Diario Financiero",
		PublishedAt: now.Add(-2 * time.Hour),
		Companies:   map[string]domain.Category{"Andina": domain.CategoryHigh},
	}}, []domain.Warning{{Source: "emol.com", Message: "sin datos"}}, now, report.Options{HoursBack: 14, Location: time.UTC})

	out := renderDigest(d)
	assert.Contains(t, out, "(últimas 14 hrs)")
	assert.Contains(t, out, "Andina (ALTA)")
	assert.Contains(t, out, "Diario Financiero")
	assert.Contains(t, out, "(hace 2 hrs)")
	assert.Contains(t, out, "sin datos")

	empty := renderDigest(report.New(nil, nil, now, report.Options{}))
	assert.Contains(t, empty, "No matching articles")
}

func TestRenderCatalog(t *testing.T) {
	t.Parallel()

	out := renderCatalog(catalog.Catalog{
		Companies:  []catalog.Company{{Name: "Andina", Aliases: []string{"Coca-Cola Andina", "Andina"}}},
		Industries: []catalog.Industry{{Name: "mineria", Keywords: []string{"mina", "cobre"}, NegativeKeywords: []string{"minecraft"}}},
	})
	assert.Contains(t, out, "Coca-Cola Andina, Andina")
	assert.Contains(t, out, "minecraft")
	assert.Equal(t, 2, strings.Count(out, "╭"))
}

func TestRenderCompany(t *testing.T) {
	t.Parallel()

	cat := catalog.Catalog{Companies: []catalog.Company{{Name: "Embotelladora Andina S.A.", Aliases: []string{"Coca-Cola Andina"}}}}

	out, err := renderCompany(cat, "Embotelladora Andina S.A.")
	require.NoError(t, err)
	assert.Contains(t, out, "Coca-Cola Andina")

	_, err = renderCompany(cat, "Andina")
	assert.ErrorContains(t, err, `company "Andina" is not in the catalog`)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "corto", truncate("corto", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.NotEmpty(t, strings.TrimSpace(out.String()))
}
