package handlers

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/telhawk-systems/minisentinel/common/httputil"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/attacks"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/generator"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

const (
	patternsPath    = "/api/v1/patterns"
	maxPatternCount = 1000
)

// PatternInfo describes a registered attack pattern.
type PatternInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultCount int    `json:"default_count"`
}

// ListPatterns handles GET /api/v1/patterns
func (h *Handler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	names := attacks.List()
	resources := make([]httputil.JSONAPIResource, 0, len(names))
	for _, name := range names {
		p, _ := attacks.Get(name)
		resources = append(resources, httputil.Resource("pattern", name, PatternInfo{
			Name:         p.Name(),
			Description:  p.Description(),
			DefaultCount: p.DefaultCount(),
		}))
	}
	httputil.WriteJSONAPICollection(w, http.StatusOK, resources, nil)
}

// GeneratePattern handles GET /api/v1/patterns/{name}?address=&count=.
// The burst is returned for inspection and not added to the log buffer.
func (h *Handler) GeneratePattern(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	name := extractIDFromPath(r.URL.Path, patternsPath)
	p, ok := attacks.Get(name)
	if !ok {
		httputil.WriteJSONAPINotFoundError(w, "pattern", name)
		return
	}

	q := r.URL.Query()
	address := q.Get("address")
	if address == "" {
		address = generator.SuspiciousIPs[0]
	}
	if net.ParseIP(address) == nil {
		h.writeInputError(w, r, fmt.Errorf("%w: address %q is not an IP", models.ErrInvalidInput, address))
		return
	}
	count := p.DefaultCount()
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeInputError(w, r, fmt.Errorf("%w: count %q is not an integer", models.ErrInvalidInput, raw))
			return
		}
		count = n
	}
	if count > maxPatternCount {
		h.writeInputError(w, r, fmt.Errorf("%w: count must be <= %d", models.ErrInvalidInput, maxPatternCount))
		return
	}

	logs, err := p.Generate(address, count, time.Now())
	if err != nil {
		h.writeInputError(w, r, err)
		return
	}

	resources := make([]httputil.JSONAPIResource, 0, len(logs))
	for _, l := range logs {
		resources = append(resources, httputil.Resource("log", l.ID, l))
	}
	httputil.WriteJSONAPICollection(w, http.StatusOK, resources, map[string]any{
		"pattern": p.Name(),
		"address": address,
		"count":   len(logs),
	})
}
