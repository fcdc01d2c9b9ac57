// Package handlers provides HTTP request handlers for the sentinel service.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/telhawk-systems/minisentinel/common/httputil"
	"github.com/telhawk-systems/minisentinel/common/logging"
	"github.com/telhawk-systems/minisentinel/sentinel/internal/metrics"
	"github.com/telhawk-systems/minisentinel/sentinel/internal/ratelimit"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// Simulator is the part of the simulator the API drives.
type Simulator interface {
	Logs() []models.LogRecord
	Alerts() []models.AlertRecord
	Alert(id string) (models.AlertRecord, bool)
	Acknowledge(id string) bool
	Resolve(id string) bool
	TopAddresses() []models.AddressStat
	RankAddresses(limit int) []models.AddressStat
	Stats() models.DashboardStats
	AlertStats() models.AlertStats
	Tick() models.LogRecord
	EmitAlert() models.AlertRecord
	Active() bool
	SetActive(ctx context.Context, active bool) error
}

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

// Handler provides HTTP handlers for the sentinel service
type Handler struct {
	sim     Simulator
	limiter ratelimit.RateLimiter
	checks  map[string]ReadinessCheck
	logger  *logging.Logger

	// runCtx outlives requests; the simulator schedules are bound to it.
	runCtx context.Context
}

// NewHandler creates a Handler. runCtx bounds simulator schedules started via the API.
func NewHandler(runCtx context.Context, sim Simulator) *Handler {
	return &Handler{
		sim:     sim,
		limiter: ratelimit.NoOpRateLimiter{},
		checks:  make(map[string]ReadinessCheck),
		logger:  logging.Default(),
		runCtx:  runCtx,
	}
}

// WithRateLimiter throttles mutating endpoints.
func (h *Handler) WithRateLimiter(l ratelimit.RateLimiter) *Handler {
	h.limiter = l
	return h
}

// WithReadinessCheck adds a named dependency check to /readyz.
func (h *Handler) WithReadinessCheck(name string, check ReadinessCheck) *Handler {
	h.checks[name] = check
	return h
}

func (h *Handler) WithLogger(l *logging.Logger) *Handler {
	h.logger = l
	return h
}

// extractIDFromPath returns the first path segment after prefix.
func extractIDFromPath(path, prefix string) string {
	remaining := strings.TrimPrefix(strings.TrimPrefix(path, prefix), "/")
	id, _, _ := strings.Cut(remaining, "/")
	return id
}

// allowMutation applies the rate limiter keyed by client address. It writes
// the 429 itself and reports whether the handler may continue. Limiter
// failures let the request through.
func (h *Handler) allowMutation(w http.ResponseWriter, r *http.Request) bool {
	key := httputil.GetClientIP(r)
	allowed, err := h.limiter.Allow(r.Context(), key)
	if err != nil {
		h.logger.WarnContext(r.Context(), "rate limiter unavailable", logging.IP(key), logging.Error(err))
		return true
	}
	if !allowed {
		metrics.RateLimited(key)
		h.logger.InfoContext(r.Context(), "request rate limited", logging.IP(key), logging.Path(r.URL.Path))
		httputil.WriteJSONAPITooManyRequests(w, 60)
		return false
	}
	return true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		httputil.WriteJSONAPIMethodNotAllowed(w, method)
		return false
	}
	return true
}

// writeInputError maps models.ErrInvalidInput to 400 and everything else to 500.
func (h *Handler) writeInputError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, models.ErrInvalidInput) {
		httputil.WriteJSONAPIValidationError(w, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "request failed", logging.Path(r.URL.Path), logging.Error(err))
	httputil.WriteJSONAPIInternalError(w, "An internal error occurred")
}

// HealthCheck handles GET /healthz
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "sentinel"})
}

// ReadyCheck handles GET /readyz
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	failures := make(map[string]string)
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "not_ready", "checks": failures})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready", "service": "sentinel"})
}
