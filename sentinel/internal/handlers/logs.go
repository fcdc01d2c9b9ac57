package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/telhawk-systems/minisentinel/common/httputil"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/explorer"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// ListLogs handles GET /api/v1/logs
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	filter, err := parseLogFilter(r)
	if err != nil {
		h.writeInputError(w, r, err)
		return
	}

	p := httputil.ParsePagination(r, explorer.DefaultPageSize, explorer.MaxPageSize)
	page := explorer.Paginate(filter.Logs(h.sim.Logs()), p.Page, p.Limit)

	resources := make([]httputil.JSONAPIResource, 0, len(page.Items))
	for _, l := range page.Items {
		resources = append(resources, httputil.Resource("log", l.ID, l))
	}
	httputil.WriteJSONAPICollection(w, http.StatusOK, resources,
		httputil.PaginationMeta(page.Page, page.Size, page.Total, page.TotalPages))
}

func parseLogFilter(r *http.Request) (explorer.LogFilter, error) {
	q := r.URL.Query()
	f := explorer.LogFilter{
		Search: q.Get("search"),
		Level:  models.LogLevel(q.Get("level")),
		Source: models.LogSource(q.Get("source")),
		IP:     q.Get("ip"),
	}

	var err error
	if f.From, err = parseTime(q.Get("from"), "from"); err != nil {
		return f, err
	}
	if f.To, err = parseTime(q.Get("to"), "to"); err != nil {
		return f, err
	}
	return f, f.Validate()
}

func parseTime(s, name string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC3339, got %q", models.ErrInvalidInput, name, s)
	}
	return t, nil
}
