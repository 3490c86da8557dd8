// Package remote implements the Supabase consumer side of daybrief: a
// PostgREST client for the todos table and a realtime change-feed
// listener. Unlike the local cache, this package returns errors — the
// repository above it owns the fallback policy.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/daybrief/daybrief/models"
)

const (
	todosTable     = "todos"
	requestTimeout = 10 * time.Second
)

// Sentinel errors distinguishing failure kinds. The sync reconciler keys
// its retain-vs-drop decision off them.
var (
	// ErrRejected marks a definitive server-side rejection (4xx). Retrying
	// the same payload will not succeed.
	ErrRejected = errors.New("remote rejected request")
	// ErrUnreachable marks a transport-level failure or server error; the
	// operation may succeed on a later attempt.
	ErrUnreachable = errors.New("remote unreachable")
)

// IsRejected reports whether err is a definitive rejection.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}

// Config holds the connection settings for a Supabase project.
type Config struct {
	URL     string
	AnonKey string
}

// Client talks to the Supabase REST endpoint for the todos table.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// NewClient builds a client for the given project.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.URL,
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Select fetches todos ordered newest-created-first. Category, priority
// and completed filters are pushed down to the server; free-text search is
// not supported by the query shape and stays client-side.
func (c *Client) Select(ctx context.Context, f models.TodoFilters) ([]models.Todo, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")
	if f.Category != "" {
		q.Set("category", "eq."+f.Category)
	}
	if f.Priority != "" {
		q.Set("priority", "eq."+f.Priority)
	}
	if f.Completed != nil {
		q.Set("completed", "eq."+strconv.FormatBool(*f.Completed))
	}

	body, err := c.do(ctx, http.MethodGet, q, nil, "")
	if err != nil {
		return nil, err
	}

	var todos []models.Todo
	if err := json.Unmarshal(body, &todos); err != nil {
		return nil, fmt.Errorf("decode select response: %w", err)
	}
	return todos, nil
}

// Insert creates a todo. The server assigns id and timestamps; the created
// row is returned.
func (c *Client) Insert(ctx context.Context, payload any) (models.Todo, error) {
	data, err := json.Marshal([]any{payload})
	if err != nil {
		return models.Todo{}, fmt.Errorf("marshal insert payload: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, url.Values{}, data, "return=representation")
	if err != nil {
		return models.Todo{}, err
	}
	return singleRow(body)
}

// Update patches the todo with the given id and returns the updated row.
func (c *Client) Update(ctx context.Context, id string, payload any) (models.Todo, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return models.Todo{}, fmt.Errorf("marshal update payload: %w", err)
	}

	q := url.Values{}
	q.Set("id", "eq."+id)
	body, err := c.do(ctx, http.MethodPatch, q, data, "return=representation")
	if err != nil {
		return models.Todo{}, err
	}
	return singleRow(body)
}

// Delete removes the todo with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)
	_, err := c.do(ctx, http.MethodDelete, q, nil, "")
	return err
}

// Ping probes reachability with the cheapest possible read.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")
	_, err := c.do(ctx, http.MethodGet, q, nil, "")
	return err
}

func (c *Client) do(ctx context.Context, method string, query url.Values, body []byte, prefer string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, todosTable)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return respBody, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: %s %s: %s", ErrRejected, method, resp.Status, truncate(respBody, 200))
	default:
		return nil, fmt.Errorf("%w: %s %s", ErrUnreachable, method, resp.Status)
	}
}

// singleRow unwraps PostgREST's representation array to the one affected
// row.
func singleRow(body []byte) (models.Todo, error) {
	var rows []models.Todo
	if err := json.Unmarshal(body, &rows); err != nil {
		return models.Todo{}, fmt.Errorf("decode row response: %w", err)
	}
	if len(rows) == 0 {
		return models.Todo{}, fmt.Errorf("%w: no row returned", ErrRejected)
	}
	return rows[0], nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
