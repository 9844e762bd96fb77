// Package api is the single boundary to the marketplace REST API: one
// method per (resource, verb), bearer auth on every call, and all
// response-shape normalization kept behind it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "marketplace-admin/internal/common/errors"
	commonhttp "marketplace-admin/internal/common/http"
	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/common/metrics"
	"marketplace-admin/internal/common/observability"
)

// TokenSource supplies the bearer token attached to authenticated calls.
// An empty token means the call goes out unauthenticated and the server
// decides what to do with it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the marketplace API.
type Client struct {
	baseURL    string
	httpClient *commonhttp.Client
	tokens     TokenSource
	logger     logger.Logger
	obs        *observability.Observability
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log logger.Logger, obs *observability.Observability) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: commonhttp.NewClient(timeout),
		tokens:     tokens,
		logger:     log.WithFields(map[string]interface{}{"component": "api-client"}),
		obs:        obs,
	}
}

// serverMessage is the error envelope the API uses for non-2xx responses.
type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do performs one HTTP call. contentType is set on the request only when
// non-empty; multipart callers pass the writer-generated value and JSON
// callers pass application/json. On non-2xx the server message is
// surfaced when decodable.
func (c *Client) do(ctx context.Context, resource, method, path string, body io.Reader, contentType string, out interface{}) error {
	start := time.Now()
	err := c.doOnce(ctx, method, path, body, contentType, out)
	c.record(ctx, resource, start, err)
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.NewNetworkError(err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, err := c.tokens.Token(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg serverMessage
		message := ""
		if jsonErr := json.Unmarshal(respBody, &msg); jsonErr == nil {
			if msg.Message != "" {
				message = msg.Message
			} else if msg.Error != "" {
				message = msg.Error
			}
		}
		return apperrors.NewAPIError(resp.StatusCode, message)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperrors.NewNetworkError(fmt.Errorf("decode %s %s response: %w", method, path, err))
		}
	}

	return nil
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, resource, path string, out interface{}) error {
	return c.do(ctx, resource, http.MethodGet, path, nil, "", out)
}

// sendJSON issues method with a JSON-encoded body.
func (c *Client) sendJSON(ctx context.Context, resource, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewNetworkError(fmt.Errorf("encode %s %s request: %w", method, path, err))
		}
		reader = bytes.NewReader(data)
	}
	return c.do(ctx, resource, method, path, reader, "application/json", out)
}

// delete issues a DELETE with no body.
func (c *Client) delete(ctx context.Context, resource, path string) error {
	return c.do(ctx, resource, http.MethodDelete, path, nil, "", nil)
}

func (c *Client) record(ctx context.Context, resource string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		metrics.APIRequestErrors.WithLabelValues(resource, string(apperrors.CodeOf(err))).Inc()
		c.logger.Warn("api request failed", map[string]interface{}{
			"resource": resource,
			"error":    err.Error(),
		})
	}
	metrics.APIRequestsTotal.WithLabelValues(resource, outcome).Inc()
	metrics.APIRequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
	if c.obs != nil {
		c.obs.RecordRequest(ctx, resource, outcome)
		c.obs.RecordRequestDuration(ctx, resource, time.Since(start))
	}
}
