// Package client provides HTTP client functionality to communicate with an
// evhist daemon.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the daemon's admin/query API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Config holds client configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger // Optional logger for client operations
}

// DefaultConfig returns default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8080/api",
		Timeout: 10 * time.Second,
	}
}

// New creates a new evhist API client
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8080/api"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Client{
		baseURL: config.BaseURL,
		logger:  config.Logger,
		client:  &http.Client{Timeout: config.Timeout},
	}
}

// IsReachable checks if the daemon is running and reachable
func (c *Client) IsReachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		c.logger.Debug("failed to create reachability request", "error", err)
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("daemon unreachable", "error", err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// Observe delivers one event to the daemon.
func (c *Client) Observe(ctx context.Context, kind, rendered string) error {
	return c.postJSON(ctx, "/events", ObserveRequest{Kind: kind, Rendered: rendered}, nil)
}

// Events queries recorded history, optionally filtered by kind names.
func (c *Client) Events(ctx context.Context, q EventsQuery) ([]Record, error) {
	vals := url.Values{}
	for _, k := range q.Includes {
		vals.Add("include", k)
	}
	for _, k := range q.Excludes {
		vals.Add("exclude", k)
	}
	var recs []Record
	if err := c.getJSON(ctx, "/events", vals, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Render fetches the rendered history text.
func (c *Client) Render(ctx context.Context, q RenderQuery) (string, error) {
	vals := url.Values{}
	for _, k := range q.Filtered {
		vals.Add("filter", k)
	}
	for _, k := range q.Highlighted {
		vals.Add("highlight", k)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/render?"+vals.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp.StatusCode, body)
	}
	return string(body), nil
}

// ActiveStatus returns the recorder's activation state.
func (c *Client) ActiveStatus(ctx context.Context) (ActiveStatus, error) {
	var st ActiveStatus
	err := c.getJSON(ctx, "/active", nil, &st)
	return st, err
}

// SetActive forces recording on or off.
func (c *Client) SetActive(ctx context.Context, active bool) error {
	body := struct {
		Active bool `json:"active"`
	}{Active: active}
	return c.postJSON(ctx, "/active", body, nil)
}

// Clear empties the daemon's history.
func (c *Client) Clear(ctx context.Context) error {
	return c.postJSON(ctx, "/clear", nil, nil)
}

// Kinds lists the registered event kind names.
func (c *Client) Kinds(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, "/kinds", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// --- helpers ---

func (c *Client) getJSON(ctx context.Context, path string, vals url.Values, out any) error {
	u := c.baseURL + path
	if len(vals) > 0 {
		u += "?" + vals.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, body)
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var rd io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, body)
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

func decodeError(code int, body []byte) error {
	var er struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return fmt.Errorf("daemon returned %d: %s", code, er.Error)
	}
	return fmt.Errorf("daemon returned status %d", code)
}
