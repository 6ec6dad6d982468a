package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"NewsAlerts/internal/config"
	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/scanner"
)

const (
	eventRegistryName     = "eventregistry"
	eventRegistryPageSize = 100
	defaultEventRegistry  = "https://eventregistry.org/api/v1"
)

var (
	// ErrMissingCredentials disables a source whose API key is absent.
	ErrMissingCredentials = errors.New("missing Event Registry API key: source disabled")

	errRegistryMissing = errors.New("scanner registry is not configured")
)

// EventRegistryScanner pulls a host's articles from the Event Registry
// (newsapi.ai) article search.
type EventRegistryScanner struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

var _ scanner.Scanner = (*EventRegistryScanner)(nil)

// NewEventRegistryScanner wires an HTTP client; a nil client gets a 30s timeout.
func NewEventRegistryScanner(cfg config.EventRegistryConfig, client *http.Client, logger *slog.Logger) *EventRegistryScanner {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultEventRegistry
	}
	return &EventRegistryScanner{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		client:   client,
		logger:   logger,
	}
}

// Name identifies the strategy inside the registry.
func (e *EventRegistryScanner) Name() string {
	return eventRegistryName
}

// Scan returns the host's articles for the calendar days spanned by the
// request window, newest first, up to MaxItems.
func (e *EventRegistryScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	if e.apiKey == "" {
		return nil, ErrMissingCredentials
	}

	sourceURI, err := e.resolveSource(ctx, req.Host)
	if err != nil {
		return nil, err
	}

	limit := req.MaxItems
	if limit <= 0 {
		limit = eventRegistryPageSize
	}

	var articles []domain.Article
	for page := 1; len(articles) < limit; page++ {
		body, err := e.post(ctx, "/article/getArticles", e.articlesQuery(sourceURI, req, page))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		results := gjson.GetBytes(body, "articles.results")
		results.ForEach(func(_, item gjson.Result) bool {
			articles = append(articles, parseEventRegistryArticle(item, req.Host))
			return len(articles) < limit
		})

		pages := gjson.GetBytes(body, "articles.pages").Int()
		if len(results.Array()) == 0 || int64(page) >= pages {
			break
		}
	}

	if e.logger != nil {
		e.logger.Debug("event registry scan", "source", sourceURI, "articles", len(articles))
	}
	return articles, nil
}

// resolveSource maps a host to its Event Registry source URI, retrying with
// the "www." prefix.
func (e *EventRegistryScanner) resolveSource(ctx context.Context, host string) (string, error) {
	for _, prefix := range []string{host, "www." + host} {
		q := url.Values{}
		q.Set("prefix", prefix)
		q.Set("apiKey", e.apiKey)

		body, err := e.get(ctx, "/suggestSourcesFast?"+q.Encode())
		if err != nil {
			return "", fmt.Errorf("resolve source %s: %w", host, err)
		}
		if uri := gjson.GetBytes(body, "0.uri").String(); uri != "" {
			return uri, nil
		}
	}
	return "", fmt.Errorf("event registry has no source uri for %s", host)
}

func (e *EventRegistryScanner) articlesQuery(sourceURI string, req scanner.Request, page int) map[string]any {
	return map[string]any{
		"action":            "getArticles",
		"sourceUri":         sourceURI,
		"dateStart":         req.Start.Format(time.DateOnly),
		"dateEnd":           req.End.Format(time.DateOnly),
		"articlesPage":      page,
		"articlesCount":     eventRegistryPageSize,
		"articlesSortBy":    "date",
		"articlesSortByAsc": false,
		"resultType":        "articles",
		"dataType":          []string{"news"},
		"apiKey":            e.apiKey,
	}
}

func parseEventRegistryArticle(item gjson.Result, host string) domain.Article {
	published := item.Get("dateTime").String()
	if published == "" {
		published = strings.TrimSpace(item.Get("date").String() + " " + item.Get("time").String())
	}
	return domain.Article{
		URL:         item.Get("url").String(),
		Title:       item.Get("title").String(),
		Body:        item.Get("body").String(),
		Source:      host,
		PublishedAt: parseTimestamp(published),
	}
}

func (e *EventRegistryScanner) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return e.do(req)
}

func (e *EventRegistryScanner) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *EventRegistryScanner) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", "NewsAlerts/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request event registry: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event registry returned %s: %s", resp.Status, strings.TrimSpace(string(truncateBytes(body, 512))))
	}
	if msg := gjson.GetBytes(body, "error").String(); msg != "" {
		return nil, fmt.Errorf("event registry error: %s", msg)
	}
	return body, nil
}

func truncateBytes(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
