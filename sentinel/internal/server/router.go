// Package server provides HTTP server setup for the sentinel service.
package server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/telhawk-systems/minisentinel/common/logging"
	"github.com/telhawk-systems/minisentinel/common/middleware"
	"github.com/telhawk-systems/minisentinel/sentinel/internal/handlers"
)

// NewRouter constructs a ServeMux with sentinel API routes registered.
func NewRouter(h *handlers.Handler, logger *logging.Logger, cors middleware.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	// Health endpoints
	mux.HandleFunc("/healthz", h.HealthCheck)
	mux.HandleFunc("/readyz", h.ReadyCheck)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Buffers and aggregates
	mux.HandleFunc("/api/v1/logs", h.ListLogs)
	mux.HandleFunc("/api/v1/stats", h.Stats)
	mux.HandleFunc("/api/v1/top-addresses", h.TopAddresses)

	// Alert routes
	mux.HandleFunc("/api/v1/alerts", h.ListAlerts)
	mux.HandleFunc("/api/v1/alerts/", alertRouteHandler(h))

	// Simulator control
	mux.HandleFunc("/api/v1/simulator/tick", h.Tick)
	mux.HandleFunc("/api/v1/simulator/alerts", h.EmitAlert)
	mux.HandleFunc("/api/v1/simulator/state", h.State)

	// Rule catalog and attack patterns
	mux.HandleFunc("/api/v1/rules", h.ListRules)
	mux.HandleFunc("/api/v1/rules/", ruleRouteHandler(h))
	mux.HandleFunc("/api/v1/patterns", h.ListPatterns)
	mux.HandleFunc("/api/v1/patterns/", h.GeneratePattern)

	var handler http.Handler = mux
	handler = AccessLog(logger)(handler)
	handler = middleware.CORS(cors)(handler)
	return middleware.RequestID(handler)
}

// alertRouteHandler routes /api/v1/alerts/{id}/* requests to appropriate handlers
func alertRouteHandler(h *handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		switch {
		case path == "/api/v1/alerts/stats":
			h.AlertStats(w, r)
		case strings.HasSuffix(path, "/acknowledge"):
			h.AcknowledgeAlert(w, r)
		case strings.HasSuffix(path, "/resolve"):
			h.ResolveAlert(w, r)
		default:
			// Handle /api/v1/alerts/{id} directly
			h.GetAlert(w, r)
		}
	}
}

// ruleRouteHandler routes /api/v1/rules/{id} and /api/v1/rules/stats
func ruleRouteHandler(h *handlers.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/rules/stats" {
			h.RuleStats(w, r)
			return
		}
		h.GetRule(w, r)
	}
}
