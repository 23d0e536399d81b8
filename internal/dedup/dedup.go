package dedup

import "go-job-digest/internal/scraper"

// TitleSet remembers lower-cased job titles for the lifetime of one run
type TitleSet struct {
	seen map[string]struct{}
}

func NewTitleSet() *TitleSet {
	return &TitleSet{seen: make(map[string]struct{})}
}

// Add records the title and reports whether it was new.
// The "N/A" placeholder is never new.
func (ts *TitleSet) Add(title string) bool {
	key := scraper.Lower(title)
	if key == scraper.Lower(scraper.NotAvailable) {
		return false
	}
	if _, exists := ts.seen[key]; exists {
		return false
	}
	ts.seen[key] = struct{}{}
	return true
}

// ByTitle keeps the first job for each title, case-insensitively, and drops
// jobs without a title. Order is preserved.
func ByTitle(jobs []scraper.Job) []scraper.Job {
	ts := NewTitleSet()
	unique := make([]scraper.Job, 0, len(jobs))
	for _, job := range jobs {
		if ts.Add(job.Title) {
			unique = append(unique, job)
		}
	}
	return unique
}
