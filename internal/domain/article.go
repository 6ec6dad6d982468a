package domain

import "time"

// Article is a news item fetched from a source for the current run window.
type Article struct {
	URL         string
	Title       string
	Body        string
	Source      string
	PublishedAt time.Time
}

// SourceArticles groups the articles of one configured source, in source priority order.
type SourceArticles struct {
	Host     string
	Label    string
	Articles []Article
}

// Warning is a run-level, non-fatal problem surfaced next to the digest.
type Warning struct {
	Source  string
	Message string
}
