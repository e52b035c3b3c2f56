// Package api holds the HTTP clients for the two external services:
// the reqres.in mock auth API (register/login/profile) and the
// jsonplaceholder posts API. Every auth-side call shares one retry
// policy: on HTTP 401 the identical request is repeated exactly once
// with the API key header attached. Retry depth is fixed at one and no
// other status triggers a retry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"postdash/internal/logging"
)

const (
	// DefaultAuthBaseURL is the reqres.in mock auth API.
	DefaultAuthBaseURL = "https://reqres.in/api"
	// DefaultPostsBaseURL is the jsonplaceholder posts feed.
	DefaultPostsBaseURL = "https://jsonplaceholder.typicode.com"

	// DefaultAPIKey is the free-tier key reqres.in expects once it
	// starts answering 401.
	DefaultAPIKey       = "reqres-free-v1"
	defaultAPIKeyHeader = "x-api-key"
)

// RetryPolicy controls the single escalation retry on authorization
// failure. MaxRetries counts extra attempts after the first request.
type RetryPolicy struct {
	MaxRetries int
	Header     string
	Key        string
}

// DefaultRetryPolicy returns the reqres.in policy: one retry, with the
// free-tier API key header.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 1, Header: defaultAPIKeyHeader, Key: DefaultAPIKey}
}

// Config configures a Client.
type Config struct {
	AuthBaseURL  string
	PostsBaseURL string
	Retry        RetryPolicy
	// Timeout applies to auth-side requests (login, register, profile),
	// PostsTimeout to the posts feed. Zero means no timeout: a hung
	// request hangs only the flow that issued it.
	Timeout      time.Duration
	PostsTimeout time.Duration
}

// DefaultConfig returns a config pointed at the real mock services.
func DefaultConfig() Config {
	return Config{
		AuthBaseURL:  DefaultAuthBaseURL,
		PostsBaseURL: DefaultPostsBaseURL,
		Retry:        DefaultRetryPolicy(),
	}
}

// Client talks to both external services. Each service gets its own
// http.Client so the timeouts stay independent.
type Client struct {
	authBase    string
	postsBase   string
	retry       RetryPolicy
	authClient  *http.Client
	postsClient *http.Client
}

// NewClient creates a client with the given config, filling in defaults
// for empty base URLs.
func NewClient(cfg Config) *Client {
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = DefaultAuthBaseURL
	}
	if cfg.PostsBaseURL == "" {
		cfg.PostsBaseURL = DefaultPostsBaseURL
	}
	return &Client{
		authBase:    cfg.AuthBaseURL,
		postsBase:   cfg.PostsBaseURL,
		retry:       cfg.Retry,
		authClient:  &http.Client{Timeout: cfg.Timeout},
		postsClient: &http.Client{Timeout: cfg.PostsTimeout},
	}
}

// Error is a server-reported business error mapped to the message the
// UI should show.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// doWithKeyRetry issues the request described by method/url/body.
// On 401 it rebuilds and re-sends the identical request once with the
// escalation header. The retried request is never itself retried.
func (c *Client) doWithKeyRetry(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	resp, err := c.send(ctx, c.authClient, method, url, body, false)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.retry.MaxRetries > 0 && c.retry.Key != "" {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		logging.APIDebug("%s %s got 401, retrying with %s header", method, url, c.retry.Header)
		return c.send(ctx, c.authClient, method, url, body, true)
	}

	return resp, nil
}

// send builds and performs one request. Requests are rebuilt per
// attempt so the body reader is fresh on the retry.
func (c *Client) send(ctx context.Context, hc *http.Client, method, url string, body []byte, withKey bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withKey {
		req.Header.Set(c.retry.Header, c.retry.Key)
	}

	return hc.Do(req)
}

// decodeJSON drains and closes the body after decoding into v.
func decodeJSON(resp *http.Response, v interface{}) error {
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
	return json.NewDecoder(resp.Body).Decode(v)
}
