// Define the job record and the interface every search provider implements

package scraper

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotAvailable is stored in a field the provider did not return
const NotAvailable = "N/A"

type Job struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Company string `json:"company,omitempty"`
}

// ErrNoAPIKey is returned by a provider before any request is made
var ErrNoAPIKey = errors.New("search api key not configured")

// ErrUnknownRecency is returned for a window other than day, week or month
var ErrUnknownRecency = errors.New("unknown recency window")

// Recency restricts results to postings indexed within a trailing window
type Recency string

const (
	RecencyDay   Recency = "day"
	RecencyWeek  Recency = "week"
	RecencyMonth Recency = "month"
)

// ParseRecency accepts "day", "week" or "month"
func ParseRecency(s string) (Recency, error) {
	switch r := Recency(Lower(s)); r {
	case RecencyDay, RecencyWeek, RecencyMonth:
		return r, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownRecency, s)
}

type Query struct {
	Text     string
	Region   string
	Language string
	Recency  Recency
}

// Searcher defines the interface that all search providers must implement
type Searcher interface {
	//Search runs one query and returns the first page of results
	Search(ctx context.Context, q Query) ([]Job, error)

	//Name is the provider label (Google Search, ...)
	Name() string
}

// Lower does full Unicode lower-casing, used wherever job text is compared
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
