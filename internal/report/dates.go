package report

import (
	"fmt"
	"math"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// LongDate renders "19 de octubre 2026" in loc.
func LongDate(t time.Time, loc *time.Location) string {
	t = t.In(location(loc))
	return fmt.Sprintf("%d de %s %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// PublishedLabel renders "2024-01-01 07:00:00 (hace 3 hrs)" in loc, or
// "(sin fecha)" for a missing date.
func PublishedLabel(published, now time.Time, loc *time.Location) string {
	if published.IsZero() {
		return "(sin fecha)"
	}
	loc = location(loc)
	return fmt.Sprintf("%s (%s)", published.In(loc).Format(time.DateTime), hoursAgo(published, now))
}

func hoursAgo(published, now time.Time) string {
	hours := int(math.Round(now.Sub(published).Hours()))
	if hours < 0 {
		hours = 0
	}
	return fmt.Sprintf("hace %d hrs", hours)
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
