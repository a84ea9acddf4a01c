package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielolaszy/gh2ado/internal/config"
	"github.com/google/go-github/v41/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient returns a Client whose requests are served by mux.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	gh := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	gh.BaseURL = baseURL
	return &Client{client: gh}
}

func TestAPIURLForDomain(t *testing.T) {
	testCases := []struct {
		name           string
		domain         string
		expectedAPIURL string
	}{
		{name: "Default GitHub.com", domain: "github.com", expectedAPIURL: "https://api.github.com/"},
		{name: "GitHub Enterprise", domain: "github.example.com", expectedAPIURL: "https://github.example.com/api/v3/"},
		{name: "Empty domain defaults to github.com", domain: "", expectedAPIURL: "https://api.github.com/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedAPIURL, apiURLForDomain(tc.domain))
		})
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(config.GitHubConfig{Token: "ghs_test", Domain: "github.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://github.example.com/api/v3/", client.client.BaseURL.String())
	assert.Equal(t, "https://github.example.com/api/v3/", client.client.UploadURL.String())

	client, err = NewClient(config.GitHubConfig{Token: "ghs_test", Domain: "github.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", client.client.BaseURL.String())
}

func TestNewClientMissingToken(t *testing.T) {
	client, err := NewClient(config.GitHubConfig{Domain: "github.com"})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "token not found")
}

func TestRenderMarkdown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/markdown", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Text    string `json:"text"`
			Mode    string `json:"mode"`
			Context string `json:"context"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "**Steps**", req.Text)
		assert.Equal(t, "gfm", req.Mode)
		assert.Equal(t, "org/repo", req.Context)

		fmt.Fprint(w, "<p><strong>Steps</strong></p>")
	})

	html, err := newTestClient(t, mux).RenderMarkdown(context.Background(), "**Steps**", "org/repo")
	require.NoError(t, err)
	assert.Equal(t, "<p><strong>Steps</strong></p>", html)
}

func TestRenderMarkdownError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/markdown", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	})

	_, err := newTestClient(t, mux).RenderMarkdown(context.Background(), "text", "org/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render markdown")
}

func TestUpdateIssueBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/issues/42", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"body":"Steps...\n\nAB#1001"}`, string(raw))
		fmt.Fprint(w, `{"number":42}`)
	})

	err := newTestClient(t, mux).UpdateIssueBody(context.Background(), "org", "repo", 42, "Steps...\n\nAB#1001")
	require.NoError(t, err)
}

func TestUpdatePullRequestBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/pulls/7", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Fixes things\n\nAB#12", req["body"])
		fmt.Fprint(w, `{"number":7}`)
	})

	err := newTestClient(t, mux).UpdatePullRequestBody(context.Background(), "org", "repo", 7, "Fixes things\n\nAB#12")
	require.NoError(t, err)
}

func TestUpdateBodyErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/org/repo/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Resource not accessible by integration"}`, http.StatusForbidden)
	})
	client := newTestClient(t, mux)

	err := client.UpdateIssueBody(context.Background(), "org", "repo", 42, "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update issue repo#42")

	err = client.UpdatePullRequestBody(context.Background(), "org", "repo", 7, "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update pull request repo#7")
}
