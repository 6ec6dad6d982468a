package ports

import (
	"context"
	"time"

	"NewsAlerts/internal/domain"
)

// Window is the publication time range a run covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ArticleSource pulls the run's articles from every configured source. It
// never fails the run: per-source problems come back as warnings next to an
// empty batch for that source.
type ArticleSource interface {
	Fetch(ctx context.Context, window Window) ([]domain.SourceArticles, []domain.Warning)
	Reset()
}

// Classifier labels association records. It may answer for a subset of the
// records; on error the returned verdicts, if any, are still usable.
type Classifier interface {
	Classify(ctx context.Context, records []domain.Association) ([]domain.Verdict, error)
}

// Message is a rendered digest ready for delivery.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Notifier delivers a rendered digest (e-mail, Telegram, etc.).
type Notifier interface {
	Name() string
	Deliver(ctx context.Context, msg Message) error
}

// Scheduler controls when runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
