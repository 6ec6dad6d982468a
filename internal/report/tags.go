package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"NewsAlerts/internal/domain"
)

// FormatTags renders "e1 (ALTA), e2 (MEDIA); i1 (BAJA)": companies first, then
// industries, each sorted by severity and then by name.
func FormatTags(companies, industries map[string]domain.Category) string {
	var parts []string
	if len(companies) > 0 {
		parts = append(parts, joinTags(companies))
	}
	if len(industries) > 0 {
		parts = append(parts, joinTags(industries))
	}
	if len(parts) == 0 {
		return "n/a"
	}
	return strings.Join(parts, "; ")
}

func joinTags(tags map[string]domain.Category) string {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(tags[b].Rank(), tags[a].Rank()); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	items := make([]string, 0, len(names))
	for _, name := range names {
		items = append(items, fmt.Sprintf("%s (%s)", name, tags[name]))
	}
	return strings.Join(items, ", ")
}
