// Package report renders consolidated groups into the plain-text and HTML
// bodies of the news digest.
package report

import (
	"bytes"
	"cmp"
	"fmt"
	"html/template"
	"slices"
	"strings"
	"time"

	"NewsAlerts/internal/domain"
)

const defaultSubjectPrefix = "Reporte de Noticias"

// Digest is the complete output of one run: ordered groups plus warnings.
type Digest struct {
	Subject     string
	Heading     string
	Groups      []domain.Group
	Warnings    []domain.Warning
	GeneratedAt time.Time
	Location    *time.Location
}

// Options controls headings of a digest.
type Options struct {
	SubjectPrefix string
	HoursBack     int
	Location      *time.Location
}

// New builds a digest for groups produced at now.
func New(groups []domain.Group, warnings []domain.Warning, now time.Time, opts Options) Digest {
	prefix := strings.TrimSpace(opts.SubjectPrefix)
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}
	loc := location(opts.Location)
	date := LongDate(now, loc)

	return Digest{
		Subject:     fmt.Sprintf("%s – %s", prefix, date),
		Heading:     fmt.Sprintf("%s (últimas %d hrs) %s", prefix, opts.HoursBack, date),
		Groups:      groups,
		Warnings:    sortWarnings(warnings),
		GeneratedAt: now,
		Location:    loc,
	}
}

// Empty reports whether the digest has no groups.
func (d Digest) Empty() bool {
	return len(d.Groups) == 0
}

type entry struct {
	Tags        string
	Title       string
	URL         string
	Source      string
	Date        string
	Description string
}

func (d Digest) entries() []entry {
	out := make([]entry, 0, len(d.Groups))
	for _, g := range d.Groups {
		out = append(out, entry{
			Tags:        FormatTags(g.Companies, g.Industries),
			Title:       g.Title,
			URL:         g.URL,
			Source:      g.SourceLabel,
			Date:        PublishedLabel(g.PublishedAt, d.GeneratedAt, d.Location),
			Description: strings.TrimRight(g.Description, " ."),
		})
	}
	return out
}

// Text renders the plain-text body.
func (d Digest) Text() string {
	var b strings.Builder
	for i, e := range d.entries() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Empresa/Industria: %s\n", e.Tags)
		fmt.Fprintf(&b, "Título: %s\n", e.Title)
		fmt.Fprintf(&b, "Fuente: %s\n", e.Source)
		fmt.Fprintf(&b, "Fecha: %s\n", e.Date)
		fmt.Fprintf(&b, "Descripción: %s.", e.Description)
	}

	if len(d.Warnings) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("Errores durante la corrida:")
		for _, w := range d.Warnings {
			fmt.Fprintf(&b, "\n- %s: %s", w.Source, w.Message)
		}
	}
	return b.String()
}

// HTML renders the e-mail body with inline styles.
func (d Digest) HTML() (string, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, struct {
		Heading  string
		Entries  []entry
		Warnings []domain.Warning
	}{
		Heading:  d.Heading,
		Entries:  d.entries(),
		Warnings: d.Warnings,
	})
	if err != nil {
		return "", fmt.Errorf("render html digest: %w", err)
	}
	return buf.String(), nil
}

func sortWarnings(warnings []domain.Warning) []domain.Warning {
	out := slices.Clone(warnings)
	slices.SortFunc(out, func(a, b domain.Warning) int {
		if c := cmp.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return cmp.Compare(a.Message, b.Message)
	})
	return slices.Compact(out)
}

var htmlTemplate = template.Must(template.New("digest").Parse(`<html><body style="margin:0;padding:0;">
<div style="background:#fafafa;padding:16px;font-family:Arial,Helvetica,sans-serif;color:#111;">
<div style="max-width:860px;margin:0 auto;background:#ffffff;border:1px solid #eaeaea;border-radius:8px;padding:20px;">
<h2 style="margin:0 0 16px 0;font-size:18px;line-height:1.3;font-weight:700;">{{.Heading}}</h2>
<ul style="list-style:none;padding:0;margin:0;">
{{- range $i, $e := .Entries}}
<li style="{{if $i}}border-top:1px solid #eee;{{end}}padding:18px 0 20px 0;margin:0;">
<div class="tags" style="font-size:16px;font-weight:700;margin:0 0 8px 0;">Empresa/Industria: {{$e.Tags}}</div>
<div style="margin:0 0 6px 0;"><span style="font-weight:600;">Título:</span> <a href="{{$e.URL}}" target="_blank" rel="noopener noreferrer" style="color:#1155cc;text-decoration:none;">{{$e.Title}}</a></div>
<div style="margin:0 0 4px 0;"><span style="font-weight:600;">Fuente:</span> {{$e.Source}}</div>
<div style="margin:0 0 6px 0;"><span style="font-weight:600;">Fecha:</span> {{$e.Date}}</div>
<div style="margin:0 0 8px 0;"><span style="font-weight:600;">Descripción:</span> {{$e.Description}}.</div>
</li>
{{- end}}
</ul>
{{- if .Warnings}}
<hr style="border:none;border-top:1px solid #eee;margin:20px 0;">
<h3 style="font-size:16px;margin:0 0 10px 0;">Errores durante la corrida</h3>
<ul class="warnings" style="padding-left:18px;margin:0;">
{{- range .Warnings}}
<li style="margin:4px 0;">{{.Source}}: {{.Message}}</li>
{{- end}}
</ul>
{{- end}}
</div></div></body></html>`))
