package handlers

import (
	"net/http"

	"github.com/telhawk-systems/minisentinel/common/httputil"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/rules"
)

const rulesPath = "/api/v1/rules"

// ListRules handles GET /api/v1/rules. ?enabled=true limits the list to active rules.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	list := rules.All()
	if r.URL.Query().Get("enabled") == "true" {
		list = rules.Active()
	}
	resources := make([]httputil.JSONAPIResource, 0, len(list))
	for _, rule := range list {
		resources = append(resources, httputil.Resource("rule", rule.ID, rule))
	}
	httputil.WriteJSONAPICollection(w, http.StatusOK, resources, nil)
}

// GetRule handles GET /api/v1/rules/{id}
func (h *Handler) GetRule(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	id := extractIDFromPath(r.URL.Path, rulesPath)
	rule, ok := rules.ByID(id)
	if !ok {
		httputil.WriteJSONAPINotFoundError(w, "rule", id)
		return
	}
	httputil.WriteJSONAPIResource(w, http.StatusOK, "rule", rule.ID, rule)
}

// RuleStats handles GET /api/v1/rules/stats
func (h *Handler) RuleStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	httputil.WriteJSONAPIResource(w, http.StatusOK, "rule-stats", "catalog", rules.Stats())
}
