package handlers

import (
	"net/http"

	"github.com/telhawk-systems/minisentinel/common/httputil"
)

// maxTopLimit caps the top-addresses limit parameter.
const maxTopLimit = 100

// Stats handles GET /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	httputil.WriteJSONAPIResource(w, http.StatusOK, "stats", "current", h.sim.Stats())
}

// TopAddresses handles GET /api/v1/top-addresses
func (h *Handler) TopAddresses(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	stats := h.sim.TopAddresses()
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit := httputil.ParseIntParam(raw, 0)
		if limit <= 0 || limit > maxTopLimit {
			httputil.WriteJSONAPIValidationError(w, "limit must be between 1 and 100")
			return
		}
		stats = h.sim.RankAddresses(limit)
	}

	resources := make([]httputil.JSONAPIResource, 0, len(stats))
	for _, s := range stats {
		resources = append(resources, httputil.Resource("address", s.IP, s))
	}
	httputil.WriteJSONAPICollection(w, http.StatusOK, resources, nil)
}
