// Package client talks to the sentinel HTTP API.
package client

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

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

const contentTypeJSONAPI = "application/vnd.api+json"

// Client is a sentinel API client.
type Client struct {
	baseURL string
	client  *http.Client
}

// PatternInfo describes a registered attack pattern.
type PatternInfo struct {
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	DefaultCount int    `json:"default_count" yaml:"default_count"`
}

// LogQuery holds the log explorer filters.
type LogQuery struct {
	Search string
	Level  string
	Source string
	IP     string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

func (q LogQuery) values() url.Values {
	v := url.Values{}
	setIf(v, "search", q.Search)
	setIf(v, "level", q.Level)
	setIf(v, "source", q.Source)
	setIf(v, "ip", q.IP)
	if !q.From.IsZero() {
		v.Set("from", q.From.Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		v.Set("to", q.To.Format(time.RFC3339))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// LogPage is one page of the log explorer.
type LogPage struct {
	Logs       []models.LogRecord
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// New creates a client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends the request and decodes a JSON:API document. A 204 yields a nil
// document and no error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*document, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", contentTypeJSONAPI)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	var doc document
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &doc, nil
}

func getOne[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	doc, err := c.do(ctx, method, path, query, body)
	if err != nil {
		var zero T
		return zero, err
	}
	if doc == nil {
		var zero T
		return zero, fmt.Errorf("empty response from %s", path)
	}
	return decodeOne[T](doc)
}

func getMany[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, map[string]any, error) {
	doc, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil || doc == nil {
		return nil, nil, err
	}
	items, err := decodeMany[T](doc)
	return items, doc.Meta, err
}

// Logs returns one page of the log explorer.
func (c *Client) Logs(ctx context.Context, q LogQuery) (*LogPage, error) {
	logs, meta, err := getMany[models.LogRecord](ctx, c, "/api/v1/logs", q.values())
	if err != nil {
		return nil, err
	}
	page := &LogPage{Logs: logs}
	if p, ok := meta["pagination"].(map[string]any); ok {
		page.Page = intOf(p["page"])
		page.Limit = intOf(p["limit"])
		page.Total = intOf(p["total"])
		page.TotalPages = intOf(p["total_pages"])
	}
	return page, nil
}

// Alerts lists alerts, optionally filtered by status and severity.
func (c *Client) Alerts(ctx context.Context, status, severity string) ([]models.AlertRecord, error) {
	q := url.Values{}
	setIf(q, "status", status)
	setIf(q, "severity", severity)
	alerts, _, err := getMany[models.AlertRecord](ctx, c, "/api/v1/alerts", q)
	return alerts, err
}

// Alert fetches one alert.
func (c *Client) Alert(ctx context.Context, id string) (models.AlertRecord, error) {
	return getOne[models.AlertRecord](ctx, c, http.MethodGet, "/api/v1/alerts/"+url.PathEscape(id), nil, nil)
}

// Acknowledge moves an active alert to acknowledged. found is false when the
// service does not know the id.
func (c *Client) Acknowledge(ctx context.Context, id string) (alert models.AlertRecord, found bool, err error) {
	return c.transition(ctx, id, "acknowledge")
}

// Resolve moves an active or acknowledged alert to resolved.
func (c *Client) Resolve(ctx context.Context, id string) (alert models.AlertRecord, found bool, err error) {
	return c.transition(ctx, id, "resolve")
}

func (c *Client) transition(ctx context.Context, id, action string) (models.AlertRecord, bool, error) {
	doc, err := c.do(ctx, http.MethodPost, "/api/v1/alerts/"+url.PathEscape(id)+"/"+action, nil, nil)
	if err != nil || doc == nil {
		return models.AlertRecord{}, false, err
	}
	alert, err := decodeOne[models.AlertRecord](doc)
	return alert, err == nil, err
}

// AlertStats returns alert counts by status and severity.
func (c *Client) AlertStats(ctx context.Context) (models.AlertStats, error) {
	return getOne[models.AlertStats](ctx, c, http.MethodGet, "/api/v1/alerts/stats", nil, nil)
}

// Stats returns the dashboard stats.
func (c *Client) Stats(ctx context.Context) (models.DashboardStats, error) {
	return getOne[models.DashboardStats](ctx, c, http.MethodGet, "/api/v1/stats", nil, nil)
}

// TopAddresses returns the busiest addresses. limit 0 uses the service default.
func (c *Client) TopAddresses(ctx context.Context, limit int) ([]models.AddressStat, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	stats, _, err := getMany[models.AddressStat](ctx, c, "/api/v1/top-addresses", q)
	return stats, err
}

// Tick asks the service to produce one log record.
func (c *Client) Tick(ctx context.Context) (models.LogRecord, error) {
	return getOne[models.LogRecord](ctx, c, http.MethodPost, "/api/v1/simulator/tick", nil, nil)
}

// EmitAlert asks the service to raise one alert.
func (c *Client) EmitAlert(ctx context.Context) (models.AlertRecord, error) {
	return getOne[models.AlertRecord](ctx, c, http.MethodPost, "/api/v1/simulator/alerts", nil, nil)
}

type simulatorState struct {
	Enabled *bool `json:"enabled"`
}

// SimulatorActive reports whether the service's schedules are running.
func (c *Client) SimulatorActive(ctx context.Context) (bool, error) {
	state, err := getOne[simulatorState](ctx, c, http.MethodGet, "/api/v1/simulator/state", nil, nil)
	if err != nil {
		return false, err
	}
	return state.Enabled != nil && *state.Enabled, nil
}

// SetSimulatorActive starts or stops the service's schedules.
func (c *Client) SetSimulatorActive(ctx context.Context, active bool) (bool, error) {
	state, err := getOne[simulatorState](ctx, c, http.MethodPut, "/api/v1/simulator/state", nil, simulatorState{Enabled: &active})
	if err != nil {
		return false, err
	}
	return state.Enabled != nil && *state.Enabled, nil
}

// Rules lists the rule catalog. enabledOnly limits it to active rules.
func (c *Client) Rules(ctx context.Context, enabledOnly bool) ([]models.Rule, error) {
	q := url.Values{}
	if enabledOnly {
		q.Set("enabled", "true")
	}
	rules, _, err := getMany[models.Rule](ctx, c, "/api/v1/rules", q)
	return rules, err
}

// Rule fetches one rule.
func (c *Client) Rule(ctx context.Context, id string) (models.Rule, error) {
	return getOne[models.Rule](ctx, c, http.MethodGet, "/api/v1/rules/"+url.PathEscape(id), nil, nil)
}

// RuleStats summarises the rule catalog.
func (c *Client) RuleStats(ctx context.Context) (models.RuleStats, error) {
	return getOne[models.RuleStats](ctx, c, http.MethodGet, "/api/v1/rules/stats", nil, nil)
}

// Patterns lists the registered attack patterns.
func (c *Client) Patterns(ctx context.Context) ([]PatternInfo, error) {
	patterns, _, err := getMany[PatternInfo](ctx, c, "/api/v1/patterns", nil)
	return patterns, err
}

// GeneratePattern previews a pattern burst. Empty address and zero count use
// the service defaults.
func (c *Client) GeneratePattern(ctx context.Context, name, address string, count int) ([]models.LogRecord, error) {
	q := url.Values{}
	setIf(q, "address", address)
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	logs, _, err := getMany[models.LogRecord](ctx, c, "/api/v1/patterns/"+url.PathEscape(name), q)
	return logs, err
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}

func intOf(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}
