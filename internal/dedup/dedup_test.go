package dedup

import (
	"testing"

	"go-job-digest/internal/scraper"

	"github.com/stretchr/testify/assert"
)

func TestByTitle(t *testing.T) {
	tests := []struct {
		name     string
		in       []scraper.Job
		expected []string
	}{
		{
			name: "Keeps first occurrence",
			in: []scraper.Job{
				{Title: "Backend Engineer", Link: "http://a"},
				{Title: "Backend Engineer", Link: "http://b"},
			},
			expected: []string{"http://a"},
		},
		{
			name: "Case insensitive",
			in: []scraper.Job{
				{Title: "Java Developer", Link: "http://a"},
				{Title: "JAVA developer", Link: "http://b"},
				{Title: "Go Developer", Link: "http://c"},
			},
			expected: []string{"http://a", "http://c"},
		},
		{
			name: "Drops missing titles",
			in: []scraper.Job{
				{Title: "N/A", Link: "http://a"},
				{Title: "n/a", Link: "http://b"},
				{Title: "Java Developer", Link: "http://c"},
			},
			expected: []string{"http://c"},
		},
		{
			name: "Preserves order",
			in: []scraper.Job{
				{Title: "C", Link: "3"},
				{Title: "A", Link: "1"},
				{Title: "c", Link: "x"},
				{Title: "B", Link: "2"},
			},
			expected: []string{"3", "1", "2"},
		},
		{
			name:     "Empty",
			in:       nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByTitle(tt.in)
			links := make([]string, 0, len(got))
			for _, job := range got {
				links = append(links, job.Link)
			}
			assert.Equal(t, tt.expected, links)
		})
	}
}

func TestByTitle_DistinctTitles(t *testing.T) {
	in := []scraper.Job{
		{Title: "Java"}, {Title: "java"}, {Title: "N/A"}, {Title: "Go"},
		{Title: "JAVA"}, {Title: "go"}, {Title: "Rust"}, {Title: "N/A"},
	}

	seen := map[string]bool{}
	for _, job := range ByTitle(in) {
		key := scraper.Lower(job.Title)
		assert.False(t, seen[key], "duplicate title %q", job.Title)
		assert.NotEqual(t, "n/a", key)
		seen[key] = true
	}
	assert.Len(t, seen, 3)
}

func TestTitleSet_Add(t *testing.T) {
	ts := NewTitleSet()
	assert.True(t, ts.Add("Backend Engineer"))
	assert.False(t, ts.Add("backend engineer"))
	assert.False(t, ts.Add("N/A"))
	assert.False(t, ts.Add("n/a"))
	assert.True(t, ts.Add("Go Engineer"))
}
