// Package probe issues single health requests against a deployed application.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultRequestTimeout = 10 * time.Second

	// a review app is one host; keep a single warm connection to it
	defaultMaxIdleConnsPerHost = 1
	defaultIdleConnTimeout     = 60 * time.Second

	maxDrainBytes = 1 << 20 // 1MB
)

// Client is an HTTP client for polling a single application URL.
//
// Redirects are not followed: a 3xx is reported as-is so that it can be
// matched against the accepted response codes.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a probe [Client]. A non-positive timeout selects the
// default of 10 seconds per request.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: timeout,
	}
}

// Probe sends one GET to url and returns the response status code. The body
// is discarded. Any failure before a response arrives is returned as an error
// with a zero status code.
func (c *Client) Probe(ctx context.Context, url string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("request to %s timed out after %s: %w", url, c.timeout, err)
		}
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// drain so the connection can be reused by the next attempt
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	return resp.StatusCode, nil
}

// Close releases idle connections. The client stays usable afterwards.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
