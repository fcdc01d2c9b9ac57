package handlers

import (
	"net/http"
	"strings"

	"github.com/telhawk-systems/minisentinel/common/httputil"
	"github.com/telhawk-systems/minisentinel/common/logging"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/explorer"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

const alertsPath = "/api/v1/alerts"

// ListAlerts handles GET /api/v1/alerts
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	filter := explorer.AlertFilter{
		Status:   models.AlertStatus(q.Get("status")),
		Severity: models.AlertSeverity(q.Get("severity")),
	}
	if err := filter.Validate(); err != nil {
		h.writeInputError(w, r, err)
		return
	}

	alerts := filter.Alerts(h.sim.Alerts())
	resources := make([]httputil.JSONAPIResource, 0, len(alerts))
	for _, a := range alerts {
		resources = append(resources, httputil.Resource("alert", a.ID, a))
	}
	httputil.WriteJSONAPICollection(w, http.StatusOK, resources, map[string]any{"total": len(alerts)})
}

// GetAlert handles GET /api/v1/alerts/{id}
func (h *Handler) GetAlert(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	id := extractIDFromPath(r.URL.Path, alertsPath)
	if id == "" {
		httputil.WriteJSONAPIValidationError(w, "Alert ID required")
		return
	}
	alert, ok := h.sim.Alert(id)
	if !ok {
		httputil.WriteJSONAPINotFoundError(w, "alert", id)
		return
	}
	httputil.WriteJSONAPIResource(w, http.StatusOK, "alert", alert.ID, alert)
}

// AcknowledgeAlert handles POST /api/v1/alerts/{id}/acknowledge
func (h *Handler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	h.transitionAlert(w, r, "/acknowledge", h.sim.Acknowledge)
}

// ResolveAlert handles POST /api/v1/alerts/{id}/resolve
func (h *Handler) ResolveAlert(w http.ResponseWriter, r *http.Request) {
	h.transitionAlert(w, r, "/resolve", h.sim.Resolve)
}

// transitionAlert answers 200 with the alert when it exists and 204 when the
// id is unknown. Disallowed transitions leave the alert as is and still
// return it.
func (h *Handler) transitionAlert(w http.ResponseWriter, r *http.Request, suffix string, apply func(string) bool) {
	if !requireMethod(w, r, http.MethodPost) || !h.allowMutation(w, r) {
		return
	}

	id := extractIDFromPath(strings.TrimSuffix(r.URL.Path, suffix), alertsPath)
	if id == "" {
		httputil.WriteJSONAPIValidationError(w, "Alert ID required")
		return
	}

	changed := apply(id)
	alert, ok := h.sim.Alert(id)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.logger.DebugContext(r.Context(), "alert transition requested",
		logging.AlertID(id),
		logging.Path(r.URL.Path),
		logging.Status(http.StatusOK),
	)
	w.Header().Set("X-Sentinel-Changed", boolString(changed))
	httputil.WriteJSONAPIResource(w, http.StatusOK, "alert", alert.ID, alert)
}

// AlertStats handles GET /api/v1/alerts/stats
func (h *Handler) AlertStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	httputil.WriteJSONAPIResource(w, http.StatusOK, "alert-stats", "current", h.sim.AlertStats())
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
