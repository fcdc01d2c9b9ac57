// Package httputil holds JSON and JSON:API response helpers and request parsing shared by handlers.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Content types written by this package.
const (
	ContentTypeJSON    = "application/json"
	ContentTypeJSONAPI = "application/vnd.api+json"
)

func write(w http.ResponseWriter, contentType string, status int, data any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.String("content_type", contentType), slog.String("error", err.Error()))
	}
}

// WriteJSON writes data as plain JSON.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	write(w, ContentTypeJSON, status, data)
}

// WriteJSONAPI writes a JSON:API document.
func WriteJSONAPI(w http.ResponseWriter, status int, data any) {
	write(w, ContentTypeJSONAPI, status, data)
}

// WriteError writes {"error": message} as plain JSON.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}
