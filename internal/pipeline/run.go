package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-job-digest/internal/config"
	"go-job-digest/internal/dedup"
	"go-job-digest/internal/filter"
	"go-job-digest/internal/mailer"
	"go-job-digest/internal/reporter"
	"go-job-digest/internal/scraper"
)

type Renderer interface {
	Render(jobs []scraper.Job) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Notifier receives a one-line summary once the run is over
type Notifier interface {
	SendStatus(message string) error
	SendError(err error) error
}

type Credentials struct {
	From     string
	To       string
	Password string
}

type Result struct {
	Fetched  int
	Filtered int
	Jobs     []scraper.Job
	Report   string
	Sent     bool
	SendErr  error
}

type Runner struct {
	searcher      scraper.Searcher
	renderer      Renderer
	mailer        Mailer
	notifier      Notifier
	query         scraper.Query
	creds         Credentials
	subjectPrefix string
	now           func() time.Time
}

func NewRunner(searcher scraper.Searcher, renderer Renderer, m Mailer, query scraper.Query, creds Credentials, subjectPrefix string) *Runner {
	return &Runner{
		searcher:      searcher,
		renderer:      renderer,
		mailer:        m,
		query:         query,
		creds:         creds,
		subjectPrefix: subjectPrefix,
		now:           time.Now,
	}
}

func (r *Runner) WithNotifier(n Notifier) *Runner {
	r.notifier = n
	return r
}

func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// QueryFromConfig builds the search query. An unknown recency falls back to
// the last day and is reported as an error.
func QueryFromConfig(cfg *config.Config) (scraper.Query, error) {
	q := scraper.Query{
		Text:     cfg.Query,
		Region:   cfg.Region,
		Language: cfg.Language,
		Recency:  scraper.RecencyDay,
	}
	recency, err := scraper.ParseRecency(cfg.Recency)
	if err != nil {
		return q, err
	}
	q.Recency = recency
	return q, nil
}

// Run does one pass of search, filter, dedupe, render and send.
// Every stage degrades on failure; nothing is retried.
func (r *Runner) Run(ctx context.Context) Result {
	var res Result

	log.Printf("🔍 Starting job search from %s...", r.searcher.Name())
	fetched, err := r.searcher.Search(ctx, r.query)
	switch {
	case errors.Is(err, scraper.ErrNoAPIKey):
		log.Printf("⚠️ API key not found, skipping %s search", r.searcher.Name())
	case err != nil:
		log.Printf("❌ Error with %s: %v", r.searcher.Name(), err)
	}
	res.Fetched = len(fetched)

	filtered := filter.ByExperience(fetched)
	res.Filtered = len(filtered)

	res.Jobs = dedup.ByTitle(filtered)
	log.Printf("📦 Found %d unique jobs from %s (%d fetched, %d after experience filter)",
		len(res.Jobs), r.searcher.Name(), res.Fetched, res.Filtered)

	report, err := r.renderer.Render(res.Jobs)
	if err != nil {
		log.Printf("⚠️ Failed to render report: %v", err)
		report = reporter.EmptyReport
	}
	res.Report = report

	msg := mailer.Message{
		From:     r.creds.From,
		To:       r.creds.To,
		Password: r.creds.Password,
		Subject:  mailer.Subject(r.subjectPrefix, r.now()),
		HTMLBody: report,
	}
	if err := r.mailer.Send(ctx, msg); err != nil {
		res.SendErr = err
		if errors.Is(err, mailer.ErrMissingCredentials) {
			log.Printf("❌ Error: Email credentials not configured")
		} else {
			log.Printf("❌ Error sending email: %v", err)
		}
	} else {
		res.Sent = true
		log.Printf("📧 Email sent successfully to %s", r.creds.To)
	}

	r.notify(res)
	return res
}

func (r *Runner) notify(res Result) {
	if r.notifier == nil {
		return
	}

	var err error
	if res.SendErr != nil {
		err = r.notifier.SendError(fmt.Errorf("job digest not delivered (%d jobs): %w", len(res.Jobs), res.SendErr))
	} else {
		err = r.notifier.SendStatus(fmt.Sprintf("Job digest sent to %s with %d jobs.", r.creds.To, len(res.Jobs)))
	}
	if err != nil {
		log.Printf("⚠️ Failed to send status to Telegram: %v", err)
	}
}
