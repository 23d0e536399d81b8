package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-job-digest/internal/scraper"
)

const (
	DefaultEndpoint = "https://google.serper.dev/search"
	DefaultNum      = 20
	DefaultTimeout  = 10 * time.Second

	// SourceLabel is stamped on every job this provider returns
	SourceLabel = "Google Search"
)

var recencyTokens = map[scraper.Recency]string{
	scraper.RecencyDay:   "qdr:d",
	scraper.RecencyWeek:  "qdr:w",
	scraper.RecencyMonth: "qdr:m",
}

type Client struct {
	apiKey     string
	endpoint   string
	num        int
	httpClient *http.Client
}

type Option func(*Client)

func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

func WithNum(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.num = n
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a Serper (Google Search API) client
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		num:        DefaultNum,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return SourceLabel
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	Gl  string `json:"gl"`
	Hl  string `json:"hl"`
	Tbs string `json:"tbs"`
}

// pointers tell a missing field apart from an empty one
type organicResult struct {
	Title   *string `json:"title"`
	Link    *string `json:"link"`
	Snippet *string `json:"snippet"`
}

type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

// Search sends one query to Serper and maps the organic results to jobs.
// Only the first page is read.
func (c *Client) Search(ctx context.Context, q scraper.Query) ([]scraper.Job, error) {
	if c.apiKey == "" {
		return nil, scraper.ErrNoAPIKey
	}

	tbs, ok := recencyTokens[q.Recency]
	if !ok {
		return nil, fmt.Errorf("%w %q", scraper.ErrUnknownRecency, q.Recency)
	}

	reqBody := searchRequest{
		Q:   q.Text,
		Num: c.num,
		Gl:  q.Region,
		Hl:  q.Language,
		Tbs: tbs,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal serper request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("serper API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(bodyBytes, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	jobs := make([]scraper.Job, 0, len(searchResp.Organic))
	for _, item := range searchResp.Organic {
		jobs = append(jobs, scraper.Job{
			Title:   orNA(item.Title),
			Link:    orNA(item.Link),
			Snippet: orNA(item.Snippet),
			Source:  SourceLabel,
		})
	}
	return jobs, nil
}

func orNA(s *string) string {
	if s == nil {
		return scraper.NotAvailable
	}
	return *s
}
