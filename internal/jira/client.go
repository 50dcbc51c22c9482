// Package jira is a typed client for the Jira Data Center REST v2 API.
// One method per endpoint, one attempt per call: no retries, no
// caching, no body interpretation beyond JSON decoding.
package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues authenticated calls against one Jira instance. It
// holds only immutable configuration and is safe for concurrent use.
type Client struct {
	baseURL    string
	authHeader string
	hc         *http.Client
}

// NewClient creates a client for the given base URL and personal
// access token. A trailing slash on the base URL is stripped once.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		authHeader: "Bearer " + token,
		hc: &http.Client{
			Timeout: 30 * time.Second,
			// Jira DC redirects unauthenticated API calls to HTML
			// login pages; surface the 3xx instead of following it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// BaseURL returns the configured instance base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx response from Jira. The body is carried as
// raw text; no structured Jira error parsing is attempted.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("jira api error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("jira api error (%d): %s", e.StatusCode, body)
}

func (c *Client) apiBase() string {
	return c.baseURL + "/rest/api/2"
}

// do performs one request. A nil body sends no payload; anything else
// is JSON-marshaled. Returns the raw response body for 2xx statuses,
// nil for 204, and *APIError otherwise.
func (c *Client) do(ctx context.Context, method, apiPath string, query url.Values, body any) ([]byte, error) {
	u := c.apiBase() + apiPath
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "mcp-jira")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if resp.StatusCode == http.StatusNoContent || len(b) == 0 {
		return nil, nil
	}
	return b, nil
}

// call performs a request and decodes the JSON response into out.
// A nil out or an empty (no-content) response leaves out untouched.
func (c *Client) call(ctx context.Context, method, apiPath string, query url.Values, body, out any) error {
	b, err := c.do(ctx, method, apiPath, query, body)
	if err != nil {
		return err
	}
	if out == nil || b == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, apiPath, err)
	}
	return nil
}
