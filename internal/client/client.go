// Package client is a typed wrapper around the project tracker REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Client talks to the API and holds the current session. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	storage    Storage
	now        func() time.Time

	mu      sync.RWMutex
	session *Session
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout. A client passed to WithHTTPClient
// is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithStorage persists the session through s. The default is memory only.
func WithStorage(s Storage) Option {
	return func(c *Client) { c.storage = s }
}

// New creates a client for the server at baseURL (for example
// http://127.0.0.1:8080) and restores any stored, unexpired session.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		storage:    NewMemoryStorage(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.timeout != c.httpClient.Timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	s, err := c.storage.Load()
	if err != nil {
		return nil, err
	}
	if s != nil && s.Expired(c.now()) {
		_ = c.storage.Clear()
		s = nil
	}
	c.session = s
	return c, nil
}

// BaseURL returns the server root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns a copy of the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Authenticated reports whether a session is present.
func (c *Client) Authenticated() bool {
	return c.Session() != nil
}

func (c *Client) setSession(s *Session) error {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	if s == nil {
		return c.storage.Clear()
	}
	return c.storage.Save(s)
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.Token
}

// do sends a JSON request and decodes a JSON response into out. Every
// failure is returned as *APIError carrying fallback when nothing better
// is available.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fallback, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &APIError{Message: fallback, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBody, fallback)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fallback, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return nil
}
