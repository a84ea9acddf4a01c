// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/url"

	"github.com/danielolaszy/gh2ado/internal/config"
	"github.com/danielolaszy/gh2ado/internal/logging"
	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"
)

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
}

// apiURLForDomain returns the REST endpoint for a GitHub host, using the
// Enterprise Server layout for anything other than github.com.
func apiURLForDomain(domain string) string {
	if domain == "" || domain == config.DefaultGitHubDomain {
		return "https://api.github.com/"
	}
	return fmt.Sprintf("https://%s/api/v3/", domain)
}

// NewClient creates a GitHub API client authenticated with the configured
// token. No request is made; Actions installation tokens cannot read /user,
// so the token is only exercised by the first real call.
func NewClient(cfg config.GitHubConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github token not found in configuration")
	}

	apiURL := apiURLForDomain(cfg.Domain)

	logging.Info("github configuration",
		"domain", cfg.Domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(cfg.Token))

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	client := github.NewClient(tc)

	if apiURL != "https://api.github.com/" {
		parsedURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github api url: %w", err)
		}

		client.BaseURL = parsedURL
		// For GitHub Enterprise, uploads go to the same endpoint
		client.UploadURL = parsedURL
	}

	return &Client{client: client}, nil
}

// RenderMarkdown renders text as GitHub flavored markdown in the context of
// repository ("owner/repo"), so that issue references and mentions resolve.
func (c *Client) RenderMarkdown(ctx context.Context, text, repository string) (string, error) {
	logging.Debug("rendering markdown", "repository", repository, "length", len(text))

	html, _, err := c.client.Markdown(ctx, text, &github.MarkdownOptions{
		Mode:    "gfm",
		Context: repository,
	})
	if err != nil {
		logging.Error("failed to render markdown", "repository", repository, "error", err)
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return html, nil
}

// UpdateIssueBody replaces the body of an issue.
func (c *Client) UpdateIssueBody(ctx context.Context, owner, repo string, number int, body string) error {
	logging.Debug("updating issue body", "owner", owner, "repo", repo, "issue_number", number)

	_, _, err := c.client.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		Body: github.String(body),
	})
	if err != nil {
		logging.Error("error updating issue body", "repo", repo, "issue_number", number, "error", err)
		return fmt.Errorf("failed to update issue %s#%d: %w", repo, number, err)
	}
	return nil
}

// UpdatePullRequestBody replaces the body of a pull request.
func (c *Client) UpdatePullRequestBody(ctx context.Context, owner, repo string, number int, body string) error {
	logging.Debug("updating pull request body", "owner", owner, "repo", repo, "pull_number", number)

	_, _, err := c.client.PullRequests.Edit(ctx, owner, repo, number, &github.PullRequest{
		Body: github.String(body),
	})
	if err != nil {
		logging.Error("error updating pull request body", "repo", repo, "pull_number", number, "error", err)
		return fmt.Errorf("failed to update pull request %s#%d: %w", repo, number, err)
	}
	return nil
}
