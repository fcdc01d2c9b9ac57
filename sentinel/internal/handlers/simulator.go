package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/telhawk-systems/minisentinel/common/httputil"
	"github.com/telhawk-systems/minisentinel/common/logging"
)

// SimulatorState is the body of GET and PUT /api/v1/simulator/state.
type SimulatorState struct {
	Enabled *bool `json:"enabled"`
}

// Tick handles POST /api/v1/simulator/tick
func (h *Handler) Tick(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.allowMutation(w, r) {
		return
	}
	rec := h.sim.Tick()
	httputil.WriteJSONAPIResource(w, http.StatusCreated, "log", rec.ID, rec)
}

// EmitAlert handles POST /api/v1/simulator/alerts
func (h *Handler) EmitAlert(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) || !h.allowMutation(w, r) {
		return
	}
	alert := h.sim.EmitAlert()
	httputil.WriteJSONAPIResource(w, http.StatusCreated, "alert", alert.ID, alert)
}

// State handles GET and PUT /api/v1/simulator/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeState(w)
	case http.MethodPut:
		if !h.allowMutation(w, r) {
			return
		}
		var body SimulatorState
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
			httputil.WriteJSONAPIValidationError(w, `body must be {"enabled": true|false}`)
			return
		}
		if err := h.sim.SetActive(h.runCtx, *body.Enabled); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to change simulator state", logging.Error(err))
			httputil.WriteJSONAPIError(w, http.StatusConflict, "simulator_unavailable", "Simulator Unavailable", err.Error())
			return
		}
		h.logger.InfoContext(r.Context(), "simulator state changed", "enabled", *body.Enabled)
		h.writeState(w)
	default:
		httputil.WriteJSONAPIMethodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (h *Handler) writeState(w http.ResponseWriter) {
	enabled := h.sim.Active()
	httputil.WriteJSONAPIResource(w, http.StatusOK, "simulator-state", "current", SimulatorState{Enabled: &enabled})
}
