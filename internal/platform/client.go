// Package platform is the typed client for the Apify catalog, build-info and
// store-search APIs. Every response is parsed and validated at this boundary;
// untyped maps never travel deeper into the pipeline.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

// maxResponseBytes bounds every platform response body read.
const maxResponseBytes = 16 << 20

// Client talks to the platform REST API. It is stateless; repeated calls are
// fresh fetches.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logging.Logger
}

// NewClient builds a platform client from the run configuration.
func NewClient(cfg *config.Config, logger logging.Logger) *Client {
	logger = logging.OrNop(logger)
	return &Client{
		baseURL: strings.TrimRight(cfg.PlatformBaseURL, "/"),
		token:   cfg.APIToken,
		http:    httpclient.New(cfg.Timeout, logger),
		logger:  logger,
	}
}

// actorPath converts "user-name/actor-name" to the API's "user-name~actor-name".
func actorPath(name string) string {
	return url.PathEscape(strings.Replace(name, "/", "~", 1))
}

// Actor fetches the full actor object by name or internal ID.
func (c *Client) Actor(ctx context.Context, name string) (*ActorDetail, error) {
	var detail ActorDetail
	endpoint := fmt.Sprintf("%s/acts/%s", c.baseURL, actorPath(name))
	if err := c.getJSON(ctx, "get actor", endpoint, &detail); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, &inspectorerrors.NotFoundError{Kind: "actor", Name: name}
		}
		return nil, err
	}
	return &detail, nil
}

// ResolveIdentity looks the actor up by name and returns its identity.
func (c *Client) ResolveIdentity(ctx context.Context, name string) (*Identity, error) {
	c.logger.Debug("resolving identity for actor %s", name)
	detail, err := c.Actor(ctx, name)
	if err != nil {
		return nil, err
	}
	if detail.ID == "" {
		return nil, inspectorerrors.NewTransport("resolve identity", 0,
			fmt.Errorf("actor %q: response has no object id", name))
	}
	return &Identity{Name: name, ID: detail.ID}, nil
}

// LatestBuild fetches the actor's default-tagged build.
func (c *Client) LatestBuild(ctx context.Context, identity *Identity) (*Build, error) {
	c.logger.Debug("fetching latest build for actor %s", identity.Name)
	var build Build
	endpoint := fmt.Sprintf("%s/acts/%s/builds/default", c.baseURL, url.PathEscape(identity.ID))
	if err := c.getJSON(ctx, "latest build", endpoint, &build); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, &inspectorerrors.NotFoundError{Kind: "build", Name: identity.Name}
		}
		return nil, err
	}
	return &build, nil
}

// Versions lists the actor's published versions.
func (c *Client) Versions(ctx context.Context, identity *Identity) ([]Version, error) {
	c.logger.Debug("listing versions for actor %s", identity.Name)
	var out struct {
		Items []Version `json:"items"`
	}
	endpoint := fmt.Sprintf("%s/acts/%s/versions", c.baseURL, url.PathEscape(identity.ID))
	if err := c.getJSON(ctx, "list versions", endpoint, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// SearchStore performs a full-text search over the store catalog. Results come
// back in upstream relevance order.
func (c *Client) SearchStore(ctx context.Context, search string, limit, offset int) ([]StoreActor, error) {
	c.logger.Info("searching store: %q (limit=%d offset=%d)", search, limit, offset)
	q := url.Values{}
	q.Set("search", search)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	var out struct {
		Items []StoreActor `json:"items"`
	}
	endpoint := c.baseURL + "/store?" + q.Encode()
	if err := c.getJSON(ctx, "store search", endpoint, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ChargeEvent records a pay-per-event charge against the current run.
func (c *Client) ChargeEvent(ctx context.Context, runID, eventName string, count int) error {
	c.logger.Info("charging event %s (count=%d)", eventName, count)
	body, err := json.Marshal(map[string]any{"eventName": eventName, "count": count})
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/actor-runs/%s/charge", c.baseURL, url.PathEscape(runID))
	return c.send(ctx, "charge event", http.MethodPost, endpoint, body, nil)
}

// PushItems appends items to a dataset. The final report sink.
func (c *Client) PushItems(ctx context.Context, datasetID string, items any) error {
	body, err := json.Marshal(items)
	if err != nil {
		return err
	}
	endpoint := fmt.Sprintf("%s/datasets/%s/items", c.baseURL, url.PathEscape(datasetID))
	return c.send(ctx, "push items", http.MethodPost, endpoint, body, nil)
}

// getJSON fetches endpoint and decodes the response envelope's data field
// into out. An absent or malformed data field is a transport-level failure.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := c.send(ctx, op, http.MethodGet, endpoint, nil, &envelope); err != nil {
		return err
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return inspectorerrors.NewTransport(op, 0, fmt.Errorf("response envelope has no data field"))
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return inspectorerrors.NewTransport(op, 0, fmt.Errorf("malformed data field: %w", err))
	}
	return nil
}

func (c *Client) send(ctx context.Context, op, method, endpoint string, body []byte, out any) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return inspectorerrors.NewTransport(op, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return inspectorerrors.NewTransport(op, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := httpclient.ReadAllWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return inspectorerrors.NewTransport(op, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return inspectorerrors.NewTransport(op, resp.StatusCode,
			fmt.Errorf("%s", strings.TrimSpace(truncateForError(respBody))))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return inspectorerrors.NewTransport(op, resp.StatusCode, fmt.Errorf("malformed response body: %w", err))
	}
	return nil
}

func truncateForError(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}

func isStatus(err error, status int) bool {
	var te *inspectorerrors.TransportError
	return errors.As(err, &te) && te.StatusCode == status
}
