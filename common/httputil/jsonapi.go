package httputil

import (
	"net/http"
	"strconv"
)

// JSONAPIResource represents a single JSON:API resource.
type JSONAPIResource struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes any               `json:"attributes"`
	Links      map[string]string `json:"links,omitempty"`
}

// Document is a JSON:API top-level document carrying data.
type Document struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
}

// JSONAPIErrorObject represents a single JSON:API error.
type JSONAPIErrorObject struct {
	Status string            `json:"status"`
	Code   string            `json:"code,omitempty"`
	Title  string            `json:"title,omitempty"`
	Detail string            `json:"detail,omitempty"`
	Source map[string]string `json:"source,omitempty"`
}

// ErrorDocument is a JSON:API top-level document carrying errors.
type ErrorDocument struct {
	Errors []JSONAPIErrorObject `json:"errors"`
}

// Resource builds a JSONAPIResource.
func Resource(resourceType, id string, attributes any) JSONAPIResource {
	return JSONAPIResource{Type: resourceType, ID: id, Attributes: attributes}
}

// WriteJSONAPIResource writes a single-resource document.
//
// Example:
//
//	httputil.WriteJSONAPIResource(w, http.StatusOK, "alert", alert.ID, alert)
func WriteJSONAPIResource(w http.ResponseWriter, status int, resourceType, id string, attributes any) {
	WriteJSONAPI(w, status, Document{Data: Resource(resourceType, id, attributes)})
}

// WriteJSONAPICollection writes a collection document. meta may be nil.
func WriteJSONAPICollection(w http.ResponseWriter, status int, resources []JSONAPIResource, meta map[string]any) {
	if resources == nil {
		resources = []JSONAPIResource{}
	}
	WriteJSONAPI(w, status, Document{Data: resources, Meta: meta})
}

// PaginationMeta builds the "pagination" meta member.
func PaginationMeta(page, limit, total, totalPages int) map[string]any {
	return map[string]any{
		"pagination": map[string]int{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	}
}

// NewJSONAPIError creates a single JSON:API error object.
func NewJSONAPIError(status int, code, title, detail string) JSONAPIErrorObject {
	return JSONAPIErrorObject{
		Status: strconv.Itoa(status),
		Code:   code,
		Title:  title,
		Detail: detail,
	}
}

// WriteJSONAPIError writes a document with one error.
func WriteJSONAPIError(w http.ResponseWriter, status int, code, title, detail string) {
	WriteJSONAPI(w, status, ErrorDocument{Errors: []JSONAPIErrorObject{NewJSONAPIError(status, code, title, detail)}})
}

func WriteJSONAPIValidationError(w http.ResponseWriter, detail string) {
	WriteJSONAPIError(w, http.StatusBadRequest, "validation_failed", "Validation Failed", detail)
}

func WriteJSONAPINotFoundError(w http.ResponseWriter, resourceType, id string) {
	WriteJSONAPIError(w, http.StatusNotFound, "not_found", "Resource Not Found",
		"The requested "+resourceType+" with ID '"+id+"' was not found")
}

func WriteJSONAPIMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	WriteJSONAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed", "")
}

// WriteJSONAPITooManyRequests writes a 429 with a Retry-After header in seconds.
func WriteJSONAPITooManyRequests(w http.ResponseWriter, retryAfterSeconds int) {
	if retryAfterSeconds > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	}
	WriteJSONAPIError(w, http.StatusTooManyRequests, "rate_limited", "Too Many Requests", "rate limit exceeded, retry later")
}

// WriteJSONAPIInternalError writes a 500. Log the cause before calling it.
func WriteJSONAPIInternalError(w http.ResponseWriter, detail string) {
	WriteJSONAPIError(w, http.StatusInternalServerError, "internal_error", "Internal Server Error", detail)
}
