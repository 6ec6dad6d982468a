package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/scanner"
	"NewsAlerts/internal/textnorm"
)

const (
	rssName       = "rss"
	feedURLOption = "feedUrl"
)

// RSSScanner reads a source's RSS/Atom feed named by the "feedUrl" option.
type RSSScanner struct {
	parser *gofeed.Parser
}

var _ scanner.Scanner = (*RSSScanner)(nil)

// NewRSSScanner wires an HTTP client; a nil client gets a 20s timeout.
func NewRSSScanner(client *http.Client) *RSSScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "NewsAlerts/1.0"
	return &RSSScanner{parser: parser}
}

// Name identifies the strategy inside the registry.
func (r *RSSScanner) Name() string {
	return rssName
}

// Scan fetches the feed and converts its items; window filtering is left to
// the caller.
func (r *RSSScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	feedURL := req.Options[feedURLOption]
	if feedURL == "" {
		return nil, fmt.Errorf("source %s: option %s is required", req.Host, feedURLOption)
	}

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
	}

	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		body := item.Description
		if body == "" {
			body = item.Content
		}

		var published time.Time
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			published = item.UpdatedParsed.UTC()
		}

		articles = append(articles, domain.Article{
			URL:         item.Link,
			Title:       item.Title,
			Body:        textnorm.StripHTML(body),
			Source:      req.Host,
			PublishedAt: published,
		})
	}
	return articles, nil
}
