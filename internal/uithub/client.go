// Package uithub fetches a "repository rendered as JSON" document from the
// uithub service, bounded by a token budget.
package uithub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"inspector/internal/config"
	inspectorerrors "inspector/internal/errors"
	"inspector/internal/httpclient"
	"inspector/internal/logging"
)

const maxResponseBytes = 32 << 20

// RepoDocument is the rendered repository: a file tree plus a path → entry
// mapping. Entries whose Type is not "content" are metadata, not source.
type RepoDocument struct {
	Tree  json.RawMessage      `json:"tree"`
	Files map[string]RepoEntry `json:"files"`
}

// RepoEntry is one rendered repository entry.
type RepoEntry struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// Client talks to the repository-rendering service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewClient builds a renderer client from the run configuration.
func NewClient(cfg *config.Config, logger logging.Logger) *Client {
	logger = logging.OrNop(logger)
	return &Client{
		baseURL: strings.TrimRight(cfg.RendererBaseURL, "/"),
		http:    httpclient.New(cfg.Timeout, logger),
		logger:  logger,
	}
}

// Render fetches the rendered repository for repoPath ("owner/repo"),
// bounded by maxTokens.
func (c *Client) Render(ctx context.Context, repoPath string, maxTokens int) (*RepoDocument, error) {
	c.logger.Info("rendering repository %s (maxTokens=%d)", repoPath, maxTokens)

	q := url.Values{}
	q.Set("accept", "application/json")
	q.Set("maxTokens", strconv.Itoa(maxTokens))
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, repoPath, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, inspectorerrors.NewTransport("render repository", 0, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, inspectorerrors.NewTransport("render repository", 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, inspectorerrors.NewTransport("render repository", resp.StatusCode,
			fmt.Errorf("repository %s", repoPath))
	}

	body, err := httpclient.ReadAllWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, inspectorerrors.NewTransport("render repository", resp.StatusCode, err)
	}
	var doc RepoDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, inspectorerrors.NewTransport("render repository", resp.StatusCode,
			fmt.Errorf("malformed document: %w", err))
	}
	return &doc, nil
}

// RepoPath extracts "owner/repo" from a GitHub repository URL.
func RepoPath(repoURL string) string {
	path := repoURL
	if idx := strings.Index(path, "github.com/"); idx >= 0 {
		path = path[idx+len("github.com/"):]
	}
	return strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
}
