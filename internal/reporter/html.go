package reporter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"go-job-digest/internal/scraper"
)

const (
	DefaultHeading = "Java Backend Developer Jobs - Posted in Last 24 Hours (India)"

	// EmptyReport is sent when the run found nothing
	EmptyReport = "<p>No new jobs found matching your criteria.</p>"

	timestampLayout = "2006-01-02 15:04:05"
)

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html"))

// HTMLReporter turns jobs into a self-contained HTML document that email
// clients can display without fetching anything
type HTMLReporter struct {
	heading string
	now     func() time.Time
}

func NewHTMLReporter(heading string) *HTMLReporter {
	if heading == "" {
		heading = DefaultHeading
	}
	return &HTMLReporter{
		heading: heading,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for the report timestamp
func (r *HTMLReporter) WithClock(now func() time.Time) *HTMLReporter {
	r.now = now
	return r
}

type card struct {
	Index  int
	Title  string
	Link   string
	Source string
}

type reportData struct {
	Heading     string
	GeneratedAt string
	Cards       []card
}

// Render builds the report. Job fields are HTML-escaped by the template engine.
func (r *HTMLReporter) Render(jobs []scraper.Job) (string, error) {
	if len(jobs) == 0 {
		return EmptyReport, nil
	}

	data := reportData{
		Heading:     r.heading,
		GeneratedAt: r.now().Format(timestampLayout),
		Cards:       make([]card, len(jobs)),
	}
	for i, job := range jobs {
		data.Cards[i] = card{
			Index:  i + 1,
			Title:  job.Title,
			Link:   job.Link,
			Source: job.Source,
		}
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
