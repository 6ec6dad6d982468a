package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "Colbún S.A.", want: "colbun s.a."},
		{in: "Compañía Minera", want: "compania minera"},
		{in: "Clínica &amp; Salud", want: "clinica & salud"},
		{in: "ITAÚ Corpbanca", want: "itau corpbanca"},
		{in: "Energía – Llaima", want: "energia  llaima"},
		{in: "Moller &amp; Pérez-Cotapos", want: "moller & perez-cotapos"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestWholeWord(t *testing.T) {
	t.Parallel()

	re, ok := WholeWord("Andina")
	require.True(t, ok)

	assert.True(t, re.MatchString(Normalize("Coca-Cola Andina informó sus resultados")))
	assert.False(t, re.MatchString(Normalize("Turismo en Andinamarca crece")))
	assert.False(t, re.MatchString(Normalize("Los Andinos")))

	_, ok = WholeWord("   ")
	assert.False(t, ok)
	_, ok = WholeWord("")
	assert.False(t, ok)
}

func TestWholeWordEscapesMetacharacters(t *testing.T) {
	t.Parallel()

	re, ok := WholeWord("Bco. de Chile")
	require.True(t, ok)

	assert.True(t, re.MatchString("el bco. de chile informo"))
	assert.False(t, re.MatchString("el bcox de chile informo"))
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Resultados del trimestre", StripHTML("<p>Resultados <b>del</b> trimestre</p>"))
	assert.Equal(t, "Copec & Arauco", StripHTML("Copec &amp; Arauco"))
	assert.Equal(t, "sin marcas", StripHTML("  sin marcas "))
	assert.Equal(t, "", StripHTML(""))
}
