package filter

import (
	"strings"

	"go-job-digest/internal/scraper"
)

// ShouldIncludeJob keeps a job that mentions a 2-4 year experience level,
// or that carries no seniority signal at all
func ShouldIncludeJob(job scraper.Job) bool {
	text := scraper.Lower(job.Title) + " " + scraper.Lower(job.Snippet) + " " + scraper.Lower(job.Company)

	if containsAny(text, includeKeywords) {
		return true
	}
	return !containsAny(text, excludeKeywords)
}

// ByExperience returns the jobs that pass ShouldIncludeJob, in input order.
// If nothing passes, the input is returned unfiltered.
func ByExperience(jobs []scraper.Job) []scraper.Job {
	var filtered []scraper.Job
	for _, job := range jobs {
		if ShouldIncludeJob(job) {
			filtered = append(filtered, job)
		}
	}

	if len(filtered) == 0 {
		return jobs
	}
	return filtered
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
