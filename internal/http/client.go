package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// Client wraps JSON-over-HTTP calls with flhub-specific configuration.
//
// Client provides:
//   - Configured User-Agent header
//   - Optional per-client timeout
//   - JSON request encoding and response decoding
//
// Example usage:
//
//	client := NewClient(30 * time.Second)
//
//	var resp generateResponse
//	err := client.PostJSON(ctx, endpoint, request, &resp)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// A zero timeout leaves requests bounded only by their context.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "flstudio-hub",
	}
}

// HTTPClient exposes the underlying client so SDKs can share its transport
// and timeout.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// PostJSON encodes body as JSON, POSTs it to url and decodes the response
// into out. out may be nil to discard the response.
//
// Returns an error if:
//   - The body cannot be encoded
//   - The request fails
//   - The response status is not 2xx (as *StatusError)
//   - The response is not valid JSON
//
// Example:
//
//	var out map[string]any
//	err := client.PostJSON(ctx, "https://example.com/api", payload, &out)
func (c *Client) PostJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(snippet))}
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
