// Package github wraps the GitHub API calls the review workflow needs:
// fetching changed PR files, upserting the review comment and reporting a
// check run.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	gh "github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
)

// Client is a repository-scoped GitHub client.
type Client struct {
	api    *gh.Client
	owner  string
	repo   string
	marker string
}

// NewClient creates a token-authenticated client for one repository. The
// marker keys review comments for upserts.
func NewClient(ctx context.Context, token, owner, repo, marker string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return &Client{api: gh.NewClient(httpClient), owner: owner, repo: repo, marker: marker}
}

// NewClientWithHTTP creates a client against a custom base URL (for testing).
func NewClientWithHTTP(owner, repo, marker, baseURL string, httpClient *http.Client) (*Client, error) {
	api := gh.NewClient(httpClient)
	base, err := url.Parse(baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	api.BaseURL = base
	return &Client{api: api, owner: owner, repo: repo, marker: marker}, nil
}
