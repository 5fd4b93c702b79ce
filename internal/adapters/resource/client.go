// Package resource implements a generic client for the remote REST resource
// store. Each Client is bound to one named collection (users, events) and
// normalizes every transport or HTTP failure to a success/fail signal:
// callers only ever see an empty list, a false, or a zero record. Failures
// are logged here so the views stay renderable.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single call to the resource store.
const DefaultTimeout = 15 * time.Second

// Client is a typed accessor for one resource collection.
type Client[T any] struct {
	baseURL    string
	collection string
	http       *http.Client
}

// NewClient creates a client for the given collection under baseURL.
// PRE: baseURL is non-empty; collection names an existing collection
func NewClient[T any](baseURL, collection string, httpClient *http.Client) *Client[T] {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client[T]{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		http:       httpClient,
	}
}

// List retrieves records, optionally filtered by exact field matches.
// POST: Returns the ordered records, or an empty slice on any failure
func (c *Client[T]) List(ctx context.Context, filters url.Values) []T {
	target := c.collectionURL()
	if len(filters) > 0 {
		target += "?" + filters.Encode()
	}
	var records []T
	if err := c.do(ctx, http.MethodGet, target, nil, &records); err != nil {
		slog.Warn("resource_call_failed", "collection", c.collection, "op", "list", "error", err.Error())
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

// Get retrieves a single record by id.
// POST: Returns the record and true, or a zero record and false
func (c *Client[T]) Get(ctx context.Context, id string) (T, bool) {
	var record T
	if err := c.do(ctx, http.MethodGet, c.recordURL(id), nil, &record); err != nil {
		slog.Warn("resource_call_failed", "collection", c.collection, "op", "get", "id", id, "error", err.Error())
		var zero T
		return zero, false
	}
	return record, true
}

// Create posts a new record and returns it with its server-assigned id.
func (c *Client[T]) Create(ctx context.Context, record T) (T, bool) {
	var created T
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), record, &created); err != nil {
		slog.Warn("resource_call_failed", "collection", c.collection, "op", "create", "error", err.Error())
		var zero T
		return zero, false
	}
	return created, true
}

// Patch merges only the provided fields into the record and returns the
// updated state.
func (c *Client[T]) Patch(ctx context.Context, id string, partial map[string]any) (T, bool) {
	var updated T
	if err := c.do(ctx, http.MethodPatch, c.recordURL(id), partial, &updated); err != nil {
		slog.Warn("resource_call_failed", "collection", c.collection, "op", "patch", "id", id, "error", err.Error())
		var zero T
		return zero, false
	}
	return updated, true
}

// Delete removes a record by id.
// POST: Returns true iff the store acknowledged the deletion
func (c *Client[T]) Delete(ctx context.Context, id string) bool {
	if err := c.do(ctx, http.MethodDelete, c.recordURL(id), nil, nil); err != nil {
		slog.Warn("resource_call_failed", "collection", c.collection, "op", "delete", "id", id, "error", err.Error())
		return false
	}
	return true
}

func (c *Client[T]) collectionURL() string {
	return c.baseURL + "/" + c.collection
}

func (c *Client[T]) recordURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// do performs one JSON round trip. A non-2xx status is an error like any
// transport failure; the distinction never leaves this package.
func (c *Client[T]) do(ctx context.Context, method, target string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("resource store request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("resource store returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse resource response: %w", err)
	}
	return nil
}
