package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/mesoplan/internal/models"
	"github.com/meltforce/mesoplan/internal/planner"
	"github.com/meltforce/mesoplan/internal/plans"
	"github.com/meltforce/mesoplan/internal/storage"
)

// HTTPClient implements DataSource by calling the Mesoplan REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// plans live on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey is
// sent on mutating requests.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// remoteErrors are service errors recognized in REST error bodies so callers
// can match them with errors.Is.
var remoteErrors = []error{
	plans.ErrNoProfile,
	plans.ErrNoMesocycle,
	plans.ErrSessionNotFound,
	plans.ErrInvalidFeedback,
	planner.ErrInvalidSchedule,
	planner.ErrInvalidWeeks,
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, in, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := string(data)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		for _, known := range remoteErrors {
			if strings.Contains(msg, known.Error()) {
				return fmt.Errorf("httpclient: %s: %w", path, known)
			}
		}
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Preview(ctx context.Context, req planner.Request) (*models.Mesocycle, error) {
	var m models.Mesocycle
	if err := c.do(ctx, http.MethodPost, "/api/v1/preview", nil, req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) Profile(ctx context.Context, _ int) (*storage.ProfileRecord, error) {
	var rec storage.ProfileRecord
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveProfile stores the profile on the server. It is not part of DataSource;
// the CLI push command uses it.
func (c *HTTPClient) SaveProfile(ctx context.Context, _ int, in plans.ProfileInput) (*storage.ProfileRecord, error) {
	var rec storage.ProfileRecord
	if err := c.do(ctx, http.MethodPut, "/api/v1/profile", nil, in, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) PlanForUser(ctx context.Context, _ int, next *models.NextCycleConfig) (*storage.MesocycleRecord, error) {
	body := map[string]any{}
	if next != nil {
		body["next_cycle"] = next
	}
	var rec storage.MesocycleRecord
	if err := c.do(ctx, http.MethodPost, "/api/v1/plans", nil, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) SubmitFeedback(ctx context.Context, _ int, in plans.FeedbackInput) (*storage.FeedbackRecord, error) {
	var rec storage.FeedbackRecord
	if err := c.do(ctx, http.MethodPost, "/api/v1/feedback", nil, in, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) Current(ctx context.Context, _ int) (*storage.MesocycleRecord, error) {
	var rec storage.MesocycleRecord
	if err := c.do(ctx, http.MethodGet, "/api/v1/plans/current", nil, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) History(ctx context.Context, _ int, limit int) ([]storage.MesocycleSummary, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var list []storage.MesocycleSummary
	if err := c.do(ctx, http.MethodGet, "/api/v1/plans", params, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) SessionDetail(ctx context.Context, _ int, week int, day models.Day) (*plans.SessionDetail, error) {
	path := fmt.Sprintf("/api/v1/plans/current/weeks/%d/days/%s", week, strings.ToLower(day.String()))

	var detail plans.SessionDetail
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *HTTPClient) Stats(ctx context.Context, _ int) (*storage.PlanStats, error) {
	var stats storage.PlanStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
