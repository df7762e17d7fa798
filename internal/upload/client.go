package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client sends plan inputs to the Mesoplan server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	retryDelay time.Duration
}

// NewClient creates a new HTTP client for the Mesoplan server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		retryDelay: time.Second,
	}
}

// ServerURL returns the base URL the client talks to.
func (c *Client) ServerURL() string { return c.serverURL }

// PutProfile stores the training profile and weekly schedule.
func (c *Client) PutProfile(ctx context.Context, p ProfileFile) error {
	return c.send(ctx, http.MethodPut, "/api/v1/profile", p, http.StatusOK)
}

// PostFeedback records an end-of-cycle evaluation.
func (c *Client) PostFeedback(ctx context.Context, f FeedbackFile) error {
	return c.send(ctx, http.MethodPost, "/api/v1/feedback", f, http.StatusCreated)
}

// CreatePlan asks the server to generate a new current mesocycle.
func (c *Client) CreatePlan(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, "/api/v1/plans", struct{}{}, http.StatusCreated)
}

// send marshals v and sends it to path. Retries up to 3 times with
// exponential backoff on transport errors and 5xx responses.
func (c *Client) send(ctx context.Context, method, path string, v any, want int) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay << uint(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == want {
			return nil
		}
		lastErr = fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, body)
		if resp.StatusCode < 500 {
			return lastErr
		}
	}

	return fmt.Errorf("after 3 attempts: %w", lastErr)
}
