// Package textnorm canonicalizes article and catalog text so entity matching
// is case, accent and HTML-entity insensitive.
package textnorm

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize unescapes HTML entities, decomposes accented letters, drops every
// non-ASCII rune and lowercases the result.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = html.UnescapeString(text)
	folder := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(nonASCII)))
	folded, _, err := transform.String(folder, text)
	if err != nil {
		folded = strings.Map(func(r rune) rune {
			if nonASCII(r) {
				return -1
			}
			return r
		}, text)
	}

	return strings.ToLower(folded)
}

func nonASCII(r rune) bool {
	return r > unicode.MaxASCII
}

// WholeWord compiles a boundary-delimited matcher for pattern. Patterns that
// normalize to blank report false and must be skipped.
func WholeWord(pattern string) (*regexp.Regexp, bool) {
	p := strings.TrimSpace(Normalize(pattern))
	if p == "" {
		return nil, false
	}
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`), true
}

// StripHTML removes markup and entities from a fragment, returning trimmed text.
func StripHTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(html.UnescapeString(fragment))
	}
	return strings.TrimSpace(doc.Text())
}
