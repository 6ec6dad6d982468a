package source

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/ports"
)

func TestNormalizeHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "df.cl", NormalizeHost(" WWW.DF.cl "))
	assert.Equal(t, "latercera.com", NormalizeHost("latercera.com"))
}

func TestCollect(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	window := ports.Window{Start: base.Add(-14 * time.Hour), End: base}
	long := strings.Repeat("ñ", 700)

	raw := []domain.Article{
		{URL: "https://www.df.cl/old", Title: "Vieja", PublishedAt: base.Add(-20 * time.Hour)},
		{URL: "https://www.df.cl/a", Title: "A", Body: long, PublishedAt: base.Add(-2 * time.Hour)},
		{URL: "https://www.df.cl/a", Title: "A repetida", PublishedAt: base.Add(-time.Hour)},
		{URL: "", Title: "Sin URL", PublishedAt: base.Add(-time.Hour)},
		{URL: "https://otro.cl/x", Title: "Otro host", PublishedAt: base.Add(-time.Hour)},
		{URL: "https://www.df.cl/undated", Title: "Sin fecha"},
		{URL: "https://dfmas.df.cl/b", Title: "B", Source: "dfmas.df.cl", PublishedAt: base.Add(-time.Hour)},
	}

	got := collect("df.cl", raw, window)
	require.Len(t, got, 3)

	assert.Equal(t, "https://dfmas.df.cl/b", got[0].URL)
	assert.Equal(t, "dfmas.df.cl", got[0].Source)
	assert.Equal(t, "https://www.df.cl/a", got[1].URL)
	assert.Equal(t, "A", got[1].Title)
	assert.Equal(t, "df.cl", got[1].Source)
	assert.Equal(t, maxBodyRunes, utf8.RuneCountInString(got[1].Body))
	assert.Equal(t, "https://www.df.cl/undated", got[2].URL)
}
