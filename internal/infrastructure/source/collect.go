package source

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"NewsAlerts/internal/domain"
	"NewsAlerts/internal/ports"
)

const maxBodyRunes = 600

// NormalizeHost lowercases host and strips a leading "www.".
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	return strings.TrimPrefix(host, "www.")
}

// hostMatches reports whether rawURL is served by base or one of its subdomains.
func hostMatches(rawURL, base string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := NormalizeHost(parsed.Hostname())
	return host == base || strings.HasSuffix(host, "."+base)
}

// collect applies the source-side contract to raw scanner output: window cut
// (undated articles are kept), URL required and unique, host restricted to
// base, body capped, newest first.
func collect(base string, raw []domain.Article, window ports.Window) []domain.Article {
	seen := make(map[string]struct{}, len(raw))
	out := make([]domain.Article, 0, len(raw))

	for _, art := range raw {
		if !art.PublishedAt.IsZero() && !window.Contains(art.PublishedAt) {
			continue
		}
		if art.URL == "" {
			continue
		}
		if _, dup := seen[art.URL]; dup {
			continue
		}
		if !hostMatches(art.URL, base) {
			continue
		}
		seen[art.URL] = struct{}{}

		art.Body = truncateRunes(art.Body, maxBodyRunes)
		if art.Source == "" {
			art.Source = base
		}
		out = append(out, art)
	}

	slices.SortStableFunc(out, func(a, b domain.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return out
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// parseTimestamp accepts RFC 3339 and the "YYYY-MM-DD HH:MM:SS" UTC form used
// by Event Registry. Unparseable input yields the zero time.
func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC()
	}
	for _, layout := range []string{time.DateTime, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
