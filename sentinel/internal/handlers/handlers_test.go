package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/minisentinel/sentinel/internal/metrics"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/generator"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/simulator"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type denyLimiter struct {
	err error
}

func (d denyLimiter) Allow(context.Context, string) (bool, error) { return false, d.err }
func (d denyLimiter) Close() error                                { return nil }

func newTestHandler(t *testing.T) (*Handler, *simulator.Simulator) {
	t.Helper()
	cfg := simulator.DefaultConfig()
	cfg.Seed = 7
	sim, err := simulator.New(cfg, simulator.WithGenerator(generator.New(7, generator.WithClock(func() time.Time { return now }))))
	require.NoError(t, err)
	require.NoError(t, sim.Initialize(100, 24, true))
	t.Cleanup(sim.Dispose)
	return NewHandler(context.Background(), sim), sim
}

type document struct {
	Data   json.RawMessage `json:"data"`
	Meta   map[string]any  `json:"meta"`
	Errors []struct {
		Status string `json:"status"`
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

type resource[T any] struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes T      `json:"attributes"`
}

func do(t *testing.T, fn http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, document) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	fn(w, req)

	var doc document
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	}
	return w, doc
}

func decodeOne[T any](t *testing.T, doc document) resource[T] {
	t.Helper()
	var r resource[T]
	require.NoError(t, json.Unmarshal(doc.Data, &r))
	return r
}

func decodeMany[T any](t *testing.T, doc document) []resource[T] {
	t.Helper()
	var rs []resource[T]
	require.NoError(t, json.Unmarshal(doc.Data, &rs))
	return rs
}

func TestHealthCheck(t *testing.T) {
	h, _ := newTestHandler(t)
	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestReadyCheck(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ReadyCheck(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	h.WithReadinessCheck("nats", func(context.Context) error { return errors.New("not connected") })
	w = httptest.NewRecorder()
	h.ReadyCheck(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "not connected")
}

func TestListLogs(t *testing.T) {
	h, _ := newTestHandler(t)

	w, doc := do(t, h.ListLogs, http.MethodGet, "/api/v1/logs", "")
	require.Equal(t, http.StatusOK, w.Code)
	logs := decodeMany[models.LogRecord](t, doc)
	assert.Len(t, logs, 50)
	assert.Equal(t, "log", logs[0].Type)

	pagination := doc.Meta["pagination"].(map[string]any)
	assert.Equal(t, 100.0, pagination["total"])
	assert.Equal(t, 2.0, pagination["total_pages"])

	_, doc = do(t, h.ListLogs, http.MethodGet, "/api/v1/logs?page=2&limit=30", "")
	assert.Len(t, decodeMany[models.LogRecord](t, doc), 30)
}

func TestListLogs_PageBeyondEnd(t *testing.T) {
	h, _ := newTestHandler(t)

	w, doc := do(t, h.ListLogs, http.MethodGet, "/api/v1/logs?page=9223372036854775807&limit=50", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeMany[models.LogRecord](t, doc))

	pagination := doc.Meta["pagination"].(map[string]any)
	assert.Equal(t, 100.0, pagination["total"])
}

func TestListLogs_Filters(t *testing.T) {
	h, _ := newTestHandler(t)

	_, doc := do(t, h.ListLogs, http.MethodGet, "/api/v1/logs?level=error&limit=200", "")
	for _, l := range decodeMany[models.LogRecord](t, doc) {
		assert.Equal(t, models.LevelError, l.Attributes.Level)
	}

	from := now.Add(-time.Hour).Format(time.RFC3339)
	_, doc = do(t, h.ListLogs, http.MethodGet, "/api/v1/logs?limit=200&from="+from, "")
	for _, l := range decodeMany[models.LogRecord](t, doc) {
		assert.False(t, l.Attributes.Timestamp.Before(now.Add(-time.Hour)))
	}
}

func TestListLogs_InvalidInput(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, target := range []string{
		"/api/v1/logs?level=loud",
		"/api/v1/logs?source=kernel",
		"/api/v1/logs?from=yesterday",
	} {
		w, doc := do(t, h.ListLogs, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		require.Len(t, doc.Errors, 1)
		assert.Equal(t, "validation_failed", doc.Errors[0].Code)
	}

	w, _ := do(t, h.ListLogs, http.MethodPost, "/api/v1/logs", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestListAlerts(t *testing.T) {
	h, _ := newTestHandler(t)

	_, doc := do(t, h.ListAlerts, http.MethodGet, "/api/v1/alerts", "")
	assert.Len(t, decodeMany[models.AlertRecord](t, doc), 6)

	_, doc = do(t, h.ListAlerts, http.MethodGet, "/api/v1/alerts?status=resolved", "")
	alerts := decodeMany[models.AlertRecord](t, doc)
	assert.Len(t, alerts, 3)
	for _, a := range alerts {
		assert.Equal(t, models.StatusResolved, a.Attributes.Status)
	}

	w, _ := do(t, h.ListAlerts, http.MethodGet, "/api/v1/alerts?status=closed", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAlert(t *testing.T) {
	h, sim := newTestHandler(t)
	first := sim.Alerts()[0]

	w, doc := do(t, h.GetAlert, http.MethodGet, "/api/v1/alerts/"+first.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeOne[models.AlertRecord](t, doc)
	assert.Equal(t, first.ID, got.ID)
	assert.Len(t, got.Attributes.RelatedLogs, len(first.RelatedLogs))

	w, _ = do(t, h.GetAlert, http.MethodGet, "/api/v1/alerts/alert_missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAlertTransitions(t *testing.T) {
	h, sim := newTestHandler(t)
	active := sim.Alerts()[0]
	require.Equal(t, models.StatusActive, active.Status)

	w, doc := do(t, h.AcknowledgeAlert, http.MethodPost, "/api/v1/alerts/"+active.ID+"/acknowledge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Sentinel-Changed"))
	assert.Equal(t, models.StatusAcknowledged, decodeOne[models.AlertRecord](t, doc).Attributes.Status)

	// acknowledging again is absorbed
	w, doc = do(t, h.AcknowledgeAlert, http.MethodPost, "/api/v1/alerts/"+active.ID+"/acknowledge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Header().Get("X-Sentinel-Changed"))
	assert.Equal(t, models.StatusAcknowledged, decodeOne[models.AlertRecord](t, doc).Attributes.Status)

	w, doc = do(t, h.ResolveAlert, http.MethodPost, "/api/v1/alerts/"+active.ID+"/resolve", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusResolved, decodeOne[models.AlertRecord](t, doc).Attributes.Status)

	got, _ := sim.Alert(active.ID)
	assert.Equal(t, models.StatusResolved, got.Status)
}

func TestAlertTransitions_UnknownID(t *testing.T) {
	h, sim := newTestHandler(t)
	before := sim.AlertStats()

	w, _ := do(t, h.ResolveAlert, http.MethodPost, "/api/v1/alerts/alert_missing/resolve", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before, sim.AlertStats())

	w, _ = do(t, h.ResolveAlert, http.MethodGet, "/api/v1/alerts/alert_missing/resolve", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimited(t *testing.T) {
	h, sim := newTestHandler(t)
	h.WithRateLimiter(denyLimiter{})
	before := len(sim.Logs())
	hits := metrics.RateLimitHits.WithLabelValues("192.0.2.1")
	hitsBefore := testutil.ToFloat64(hits)

	w, doc := do(t, h.Tick, http.MethodPost, "/api/v1/simulator/tick", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	require.Len(t, doc.Errors, 1)
	assert.Equal(t, "rate_limited", doc.Errors[0].Code)
	assert.Len(t, sim.Logs(), before)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(hits))

	// reads are never limited
	w, _ = do(t, h.Stats, http.MethodGet, "/api/v1/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, hitsBefore+1, testutil.ToFloat64(hits))
}

func TestRateLimiterFailureFailsOpen(t *testing.T) {
	h, _ := newTestHandler(t)
	h.WithRateLimiter(denyLimiter{err: errors.New("redis down")})

	w, _ := do(t, h.EmitAlert, http.MethodPost, "/api/v1/simulator/alerts", "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestStats(t *testing.T) {
	h, _ := newTestHandler(t)

	w, doc := do(t, h.Stats, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeOne[models.DashboardStats](t, doc).Attributes
	assert.Equal(t, 100, stats.TotalLogs)
	assert.Equal(t, 120, stats.LogsPerMinute)
	assert.Equal(t, 2, stats.ActiveAlerts)
	assert.Equal(t, 2, stats.CriticalAlerts)

	_, doc = do(t, h.AlertStats, http.MethodGet, "/api/v1/alerts/stats", "")
	alertStats := decodeOne[models.AlertStats](t, doc).Attributes
	assert.Equal(t, 6, alertStats.Total)
	assert.Equal(t, 3, alertStats.Resolved)
}

func TestTopAddresses(t *testing.T) {
	h, _ := newTestHandler(t)

	_, doc := do(t, h.TopAddresses, http.MethodGet, "/api/v1/top-addresses", "")
	top := decodeMany[models.AddressStat](t, doc)
	require.Len(t, top, 10)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Attributes.RequestCount, top[i].Attributes.RequestCount)
	}

	_, doc = do(t, h.TopAddresses, http.MethodGet, "/api/v1/top-addresses?limit=3", "")
	assert.Len(t, decodeMany[models.AddressStat](t, doc), 3)

	w, _ := do(t, h.TopAddresses, http.MethodGet, "/api/v1/top-addresses?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTickAndEmit(t *testing.T) {
	h, sim := newTestHandler(t)

	w, doc := do(t, h.Tick, http.MethodPost, "/api/v1/simulator/tick", "")
	require.Equal(t, http.StatusCreated, w.Code)
	rec := decodeOne[models.LogRecord](t, doc)
	assert.Equal(t, rec.ID, sim.Logs()[0].ID)

	w, doc = do(t, h.EmitAlert, http.MethodPost, "/api/v1/simulator/alerts", "")
	require.Equal(t, http.StatusCreated, w.Code)
	alert := decodeOne[models.AlertRecord](t, doc)
	assert.Equal(t, alert.ID, sim.Alerts()[0].ID)
	assert.Equal(t, models.StatusActive, alert.Attributes.Status)
}

func TestState(t *testing.T) {
	h, sim := newTestHandler(t)

	_, doc := do(t, h.State, http.MethodGet, "/api/v1/simulator/state", "")
	state := decodeOne[SimulatorState](t, doc).Attributes
	require.NotNil(t, state.Enabled)
	assert.False(t, *state.Enabled)

	w, doc := do(t, h.State, http.MethodPut, "/api/v1/simulator/state", `{"enabled":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *decodeOne[SimulatorState](t, doc).Attributes.Enabled)
	assert.True(t, sim.Active())

	w, _ = do(t, h.State, http.MethodPut, "/api/v1/simulator/state", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, sim.Active())

	w, _ = do(t, h.State, http.MethodPut, "/api/v1/simulator/state", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, h.State, http.MethodDelete, "/api/v1/simulator/state", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestState_Disposed(t *testing.T) {
	h, sim := newTestHandler(t)
	sim.Dispose()

	w, _ := do(t, h.State, http.MethodPut, "/api/v1/simulator/state", `{"enabled":true}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRules(t *testing.T) {
	h, _ := newTestHandler(t)

	_, doc := do(t, h.ListRules, http.MethodGet, "/api/v1/rules", "")
	assert.Len(t, decodeMany[models.Rule](t, doc), 8)

	_, doc = do(t, h.ListRules, http.MethodGet, "/api/v1/rules?enabled=true", "")
	assert.Len(t, decodeMany[models.Rule](t, doc), 7)

	w, doc := do(t, h.GetRule, http.MethodGet, "/api/v1/rules/rule_002", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DDoS Detection", decodeOne[models.Rule](t, doc).Attributes.Name)

	w, _ = do(t, h.GetRule, http.MethodGet, "/api/v1/rules/rule_999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, doc = do(t, h.RuleStats, http.MethodGet, "/api/v1/rules/stats", "")
	stats := decodeOne[models.RuleStats](t, doc).Attributes
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 256, stats.TotalHits)
}

func TestPatterns(t *testing.T) {
	h, sim := newTestHandler(t)
	before := len(sim.Logs())

	_, doc := do(t, h.ListPatterns, http.MethodGet, "/api/v1/patterns", "")
	patterns := decodeMany[PatternInfo](t, doc)
	require.Len(t, patterns, 2)
	assert.Equal(t, "brute_force", patterns[0].ID)
	assert.Equal(t, 10, patterns[0].Attributes.DefaultCount)
	assert.Equal(t, "ddos", patterns[1].ID)

	w, doc := do(t, h.GeneratePattern, http.MethodGet, "/api/v1/patterns/brute_force?address=203.0.113.9&count=4", "")
	require.Equal(t, http.StatusOK, w.Code)
	logs := decodeMany[models.LogRecord](t, doc)
	require.Len(t, logs, 4)
	for _, l := range logs {
		assert.Equal(t, "203.0.113.9", l.Attributes.IP)
		assert.Equal(t, models.SourceAuth, l.Attributes.Source)
	}

	_, doc = do(t, h.GeneratePattern, http.MethodGet, "/api/v1/patterns/ddos", "")
	assert.Len(t, decodeMany[models.LogRecord](t, doc), 150)

	// previews never touch the buffer
	assert.Len(t, sim.Logs(), before)
}

func TestGeneratePattern_Errors(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		target string
		status int
	}{
		{"/api/v1/patterns/port_scan", http.StatusNotFound},
		{"/api/v1/patterns/ddos?address=not-an-ip", http.StatusBadRequest},
		{"/api/v1/patterns/ddos?count=-1", http.StatusBadRequest},
		{"/api/v1/patterns/ddos?count=5000", http.StatusBadRequest},
		{"/api/v1/patterns/ddos?count=abc", http.StatusBadRequest},
		{"/api/v1/patterns/ddos?count=1.5", http.StatusBadRequest},
	}
	for _, tt := range tests {
		w, doc := do(t, h.GeneratePattern, http.MethodGet, tt.target, "")
		assert.Equal(t, tt.status, w.Code, tt.target)
		if tt.status == http.StatusBadRequest {
			require.Len(t, doc.Errors, 1, tt.target)
			assert.Equal(t, "validation_failed", doc.Errors[0].Code, tt.target)
		}
	}
}

func TestExtractIDFromPath(t *testing.T) {
	assert.Equal(t, "alert_1", extractIDFromPath("/api/v1/alerts/alert_1", alertsPath))
	assert.Equal(t, "alert_1", extractIDFromPath("/api/v1/alerts/alert_1/resolve", alertsPath))
	assert.Equal(t, "", extractIDFromPath("/api/v1/alerts/", alertsPath))
}
