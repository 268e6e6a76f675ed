// Package github fetches pull request metadata and review comments from the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gh "github.com/google/go-github/v82/github"

	"github.com/alanmeadows/gh-pr-comments/internal/resolve"
)

// DefaultUserAgent is sent when Options.UserAgent is empty. The API rejects requests
// without a User-Agent header.
const DefaultUserAgent = "gh-pr-comments"

// DefaultTimeout bounds each API request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	// APIURL overrides the REST endpoint, e.g. for GitHub Enterprise. Empty means api.github.com.
	APIURL string
	// UserAgent is the User-Agent header value.
	UserAgent string
	// Timeout bounds each request.
	Timeout time.Duration
}

// Client performs unauthenticated, read-only pull request lookups.
type Client struct {
	client *gh.Client
}

// NewClient creates a Client from opts.
func NewClient(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := gh.NewClient(&http.Client{Timeout: timeout})
	if opts.APIURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("configuring API URL %q: %w", opts.APIURL, err)
		}
	}

	client.UserAgent = opts.UserAgent
	if client.UserAgent == "" {
		client.UserAgent = DefaultUserAgent
	}

	return &Client{client: client}, nil
}

// GetPullRequest fetches the title and web URL of the referenced pull request.
func (c *Client) GetPullRequest(ctx context.Context, ref resolve.Reference) (*PullRequestSummary, error) {
	slog.Debug("fetching pull request", "ref", ref.String())

	pr, _, err := c.client.PullRequests.Get(ctx, ref.Owner(), ref.Repo(), ref.Number())
	if err != nil {
		return nil, fmt.Errorf("fetching pull request %s: %w", ref, err)
	}

	return &PullRequestSummary{
		Title: pr.GetTitle(),
		URL:   pr.GetHTMLURL(),
	}, nil
}

// ListReviewComments fetches the inline review comments of the referenced pull request
// in the order the API returns them. Only the first page is requested.
func (c *Client) ListReviewComments(ctx context.Context, ref resolve.Reference) ([]ReviewComment, error) {
	slog.Debug("fetching review comments", "ref", ref.String())

	ghComments, _, err := c.client.PullRequests.ListComments(ctx, ref.Owner(), ref.Repo(), ref.Number(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching review comments for %s: %w", ref, err)
	}

	comments := make([]ReviewComment, 0, len(ghComments))
	for _, comment := range ghComments {
		comments = append(comments, mapComment(comment))
	}

	slog.Debug("fetched review comments", "ref", ref.String(), "count", len(comments))
	return comments, nil
}

// mapComment converts a GitHub review comment to a ReviewComment. CreatedAt is
// normalized to UTC RFC 3339 at second precision, which matches what github.com sends.
func mapComment(c *gh.PullRequestComment) ReviewComment {
	var createdAt string
	if c.CreatedAt != nil {
		createdAt = c.GetCreatedAt().UTC().Format(time.RFC3339)
	}

	return ReviewComment{
		Author:    c.GetUser().GetLogin(),
		Body:      c.GetBody(),
		CreatedAt: createdAt,
		URL:       c.GetHTMLURL(),
		DiffHunk:  c.GetDiffHunk(),
		FilePath:  c.GetPath(),
		Line:      c.GetLine(),
	}
}
