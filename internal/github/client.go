// Package github wraps the GitHub API calls the radar needs.
package github

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	githubapi "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned when no personal access token is configured.
var ErrNoToken = errors.New("no GITHUB_PAT provided")

// Client posts comments on issues.
type Client struct {
	api *githubapi.Client
}

// NewClient authenticates with a personal access token.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{api: githubapi.NewClient(oauth2.NewClient(ctx, ts))}, nil
}

// NewClientWithHTTP builds an unauthenticated client on hc, pointed at baseURL
// when it is non-empty. It exists for GitHub Enterprise and tests.
func NewClientWithHTTP(hc *http.Client, baseURL string) (*Client, error) {
	api := githubapi.NewClient(hc)
	if baseURL != "" {
		var err error
		api, err = api.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("github base url: %w", err)
		}
	}
	return &Client{api: api}, nil
}

// CreateIssueComment posts body as a new comment on owner/repo#number.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	log.Printf("DEBUG: Creating comment on %s/%s#%d (%d bytes)", owner, repo, number, len(body))
	_, _, err := c.api.Issues.CreateComment(ctx, owner, repo, number, &githubapi.IssueComment{Body: githubapi.String(body)})
	if err != nil {
		return fmt.Errorf("create comment on %s/%s#%d: %w", owner, repo, number, err)
	}
	return nil
}
