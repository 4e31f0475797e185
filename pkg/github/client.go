// Package github wraps the GitHub REST API client used to fetch
// repository READMEs.
package github

import (
	"context"
	"net/http"

	"github.com/google/go-github/v32/github"
	"golang.org/x/oauth2"
)

// Client fetches README content from a GitHub-compatible REST API.
type Client struct {
	gh *github.Client
}

// NewClient returns a GitHub client. An empty token yields an
// unauthenticated client subject to the lower rate limit.
func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	return &Client{gh: github.NewClient(httpClient)}
}

// Readme returns the raw markdown of the repository's README via
// GET /repos/{owner}/{repo}/readme.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	content, _, err := c.gh.Repositories.GetReadme(ctx, owner, repo, nil)
	if err != nil {
		return "", err
	}
	return content.GetContent()
}
