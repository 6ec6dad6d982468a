package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"NewsAlerts/internal/catalog"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Companies: []catalog.Company{
			{Name: "Embotelladora Andina S.A.", Aliases: []string{"Andina", "Coca-Cola Andina", " "}},
			{Name: "CAP S.A.", Aliases: []string{"CAP", "Compañía de Acero del Pacífico"}},
			{Name: "Empresas Copec S.A.", Aliases: []string{"Copec"}},
		},
		Industries: []catalog.Industry{
			{Name: "energia", Keywords: []string{"ppa", "Hidrógeno Verde"}},
			{Name: "mineria", Keywords: []string{"produccion de cobre", "minecraft"}, NegativeKeywords: []string{"mineria de datos", "minecraft"}},
			{Name: "retail", Keywords: []string{"", "apertura de tienda"}},
		},
	}
}

func TestMatchesCompanyWholeWord(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	m := New(cat)
	andina := cat.Companies[0]

	assert.True(t, m.MatchesCompany("Coca-Cola Andina informó sus resultados", "", andina))
	assert.True(t, m.MatchesCompany("", "La embotelladora ANDINA sube", andina))
	assert.False(t, m.MatchesCompany("Turismo en Andinamarca", "", andina))
	assert.False(t, m.MatchesCompany("Aguas Andinas sube tarifas", "", andina))
}

func TestMatchesCompanyFoldsAccents(t *testing.T) {
	t.Parallel()

	cat := testCatalog()
	m := New(cat)

	assert.True(t, m.MatchesCompany("Compania de Acero del Pacifico reporta", "", cat.Companies[1]))
	assert.False(t, m.MatchesCompany("Capital de riesgo", "escape", cat.Companies[1]))
}

func TestMatchesCompanyOutsideCatalog(t *testing.T) {
	t.Parallel()

	m := New(testCatalog())
	other := catalog.Company{Name: "Colbún S.A.", Aliases: []string{"Colbún"}}

	assert.True(t, m.MatchesCompany("Colbun inaugura central", "", other))
	assert.False(t, m.MatchesCompany("Colbunes", "", other))
	assert.False(t, m.MatchesCompany("cualquier texto", "", catalog.Company{Aliases: []string{"", "  "}}))
}

func TestDetectIndustries(t *testing.T) {
	t.Parallel()

	m := New(testCatalog())

	assert.Equal(t, []string{"energia"}, m.DetectIndustries("Colbún firma PPA", ""))
	assert.Equal(t, []string{"energia", "retail"},
		m.DetectIndustries("Proyecto de hidrogeno verde", "y apertura de tienda en Temuco"))
	assert.Empty(t, m.DetectIndustries("Sin sector", "nada relevante"))
}

func TestDetectIndustriesNegativeKeywordSuppresses(t *testing.T) {
	t.Parallel()

	m := New(testCatalog())

	assert.Empty(t, m.DetectIndustries("Record de produccion de cobre", "segun un torneo de minecraft"))
	assert.Equal(t, []string{"mineria"}, m.DetectIndustries("Record de produccion de cobre", ""))
	assert.Equal(t, []string{"energia"}, m.DetectIndustries("PPA y mineria de datos", "produccion de cobre"))
}
