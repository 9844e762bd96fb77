// internal/common/http/client.go
// Package http wraps the outbound HTTP client the API boundary uses.
// Every request carries a hard timeout so a stalled marketplace call
// can never hang the console.
package http

import (
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the outbound HTTP client. Cancellation rides the request
// context; callers build requests with http.NewRequestWithContext.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with a per-request timeout. A zero or
// negative timeout falls back to the default.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do executes one request.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
