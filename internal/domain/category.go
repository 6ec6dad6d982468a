package domain

import "strings"

// Category is the relevance label assigned by the classification gateway.
type Category string

const (
	CategoryHigh         Category = "ALTA"
	CategoryMedium       Category = "MEDIA"
	CategoryLow          Category = "BAJA"
	CategoryNone         Category = "NULA"
	CategoryUnclassified Category = "SIN CLASIFICAR"
)

// ParseCategory maps a raw label onto the allow-list; anything else is unclassified.
func ParseCategory(raw string) Category {
	switch c := Category(strings.ToUpper(strings.TrimSpace(raw))); c {
	case CategoryHigh, CategoryMedium, CategoryLow, CategoryNone:
		return c
	default:
		return CategoryUnclassified
	}
}

// Rank orders categories by severity. NULA ranks below everything and is
// never merged.
func (c Category) Rank() int {
	switch c {
	case CategoryHigh:
		return 3
	case CategoryMedium:
		return 2
	case CategoryLow:
		return 1
	case CategoryUnclassified:
		return 0
	default:
		return -1
	}
}

// MergeCategory keeps the higher-severity category; ties keep existing.
func MergeCategory(existing, incoming Category) Category {
	if existing == "" {
		return incoming
	}
	if incoming.Rank() > existing.Rank() {
		return incoming
	}
	return existing
}
