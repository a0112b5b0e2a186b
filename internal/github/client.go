// Package github imports merged pull requests into the journal via the
// GitHub REST search API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://api.github.com"
	perPage        = 100
	// maxPages caps pagination; the search API refuses results past 1000
	// anyway.
	maxPages = 10
)

// PullRequest is one merged PR from the search API.
type PullRequest struct {
	Number        int     `json:"number"`
	Title         string  `json:"title"`
	HTMLURL       string  `json:"html_url"`
	RepositoryURL string  `json:"repository_url"`
	ClosedAt      *string `json:"closed_at"`

	PullRequestMeta struct {
		MergedAt *string `json:"merged_at"`
	} `json:"pull_request"`
}

// MergedAt returns the merge timestamp, falling back to the close time.
func (p *PullRequest) MergedAt() time.Time {
	for _, raw := range []*string{p.PullRequestMeta.MergedAt, p.ClosedAt} {
		if raw == nil {
			continue
		}
		if t, err := time.Parse(time.RFC3339, *raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

type searchResponse struct {
	TotalCount int           `json:"total_count"`
	Items      []PullRequest `json:"items"`
}

// Client is a minimal GitHub REST client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a client. The token may be empty for public data, at
// the cost of much lower rate limits.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// MergedPullRequests returns PRs authored by user and merged on or after
// since, paginating through the search API.
func (c *Client) MergedPullRequests(ctx context.Context, user string, since time.Time) ([]PullRequest, error) {
	if user == "" {
		return nil, fmt.Errorf("github user not configured")
	}

	query := fmt.Sprintf("is:pr is:merged author:%s merged:>=%s", user, since.UTC().Format("2006-01-02"))

	var all []PullRequest
	for page := 1; page <= maxPages; page++ {
		items, err := c.searchPage(ctx, query, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) < perPage {
			break
		}
	}

	slog.Debug("fetched merged pull requests", "user", user, "since", since, "count", len(all))
	return all, nil
}

func (c *Client) searchPage(ctx context.Context, query string, page int) ([]PullRequest, error) {
	u := fmt.Sprintf("%s/search/issues?q=%s&sort=updated&order=desc&per_page=%d&page=%d",
		c.baseURL, url.QueryEscape(query), perPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search pull requests: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github search returned %d: %s", resp.StatusCode, body)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return result.Items, nil
}
