package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	cases := map[string]Category{
		"ALTA":           CategoryHigh,
		" media ":        CategoryMedium,
		"baja":           CategoryLow,
		"Nula":           CategoryNone,
		"":               CategoryUnclassified,
		"CRITICA":        CategoryUnclassified,
		"SIN CLASIFICAR": CategoryUnclassified,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseCategory(raw), "raw %q", raw)
	}
}

func TestMergeCategoryOrder(t *testing.T) {
	t.Parallel()

	all := []Category{CategoryUnclassified, CategoryLow, CategoryMedium, CategoryHigh}
	for _, a := range all {
		assert.Equal(t, a, MergeCategory(a, a), "idempotent %s", a)
		for _, b := range all {
			assert.Equal(t, MergeCategory(a, b), MergeCategory(b, a), "commutative %s/%s", a, b)
		}
		if a != CategoryUnclassified {
			assert.Equal(t, a, MergeCategory(CategoryUnclassified, a))
		}
	}

	assert.Equal(t, CategoryHigh, MergeCategory(CategoryMedium, CategoryHigh))
	assert.Equal(t, CategoryLow, MergeCategory("", CategoryLow))
}

func TestCategoryRank(t *testing.T) {
	t.Parallel()

	assert.Less(t, CategoryUnclassified.Rank(), CategoryLow.Rank())
	assert.Less(t, CategoryLow.Rank(), CategoryMedium.Rank())
	assert.Less(t, CategoryMedium.Rank(), CategoryHigh.Rank())
	assert.Less(t, CategoryNone.Rank(), CategoryUnclassified.Rank())
}
