package domain

import "time"

// EntityKind tags what an association record points at.
type EntityKind string

const (
	KindCompany  EntityKind = "company"
	KindIndustry EntityKind = "industry"
)

// Association is one (article, entity) pairing awaiting classification.
// Company is the catalog company whose match produced the record; for company
// records it equals Entity.
type Association struct {
	ID          string
	Article     Article
	Kind        EntityKind
	Entity      string
	Company     string
	SourceLabel string
}

// Verdict is the classification gateway's answer for one record id.
type Verdict struct {
	ID       string
	Category Category
}

// Group is the per-URL aggregate of surviving entity tags.
type Group struct {
	URL         string
	Title       string
	Description string
	SourceLabel string
	PublishedAt time.Time
	Companies   map[string]Category
	Industries  map[string]Category
}
