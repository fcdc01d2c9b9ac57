package client

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Resource is a single JSON:API resource with typed attributes.
type Resource[T any] struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes T      `json:"attributes"`
}

// document is a JSON:API response whose data is decoded lazily.
type document struct {
	Data   json.RawMessage `json:"data"`
	Meta   map[string]any  `json:"meta,omitempty"`
	Errors []jsonAPIError  `json:"errors,omitempty"`
}

// jsonAPIError represents a JSON:API error object.
type jsonAPIError struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Detail     string
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("server returned %d (%s): %s", e.StatusCode, e.Code, e.Detail)
	case e.Detail != "":
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
	default:
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var doc document
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.Errors) > 0 {
		apiErr.Code = doc.Errors[0].Code
		apiErr.Detail = doc.Errors[0].Detail
		if apiErr.Detail == "" {
			apiErr.Detail = doc.Errors[0].Title
		}
	} else {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	return apiErr
}

func decodeOne[T any](doc *document) (T, error) {
	var r Resource[T]
	if err := json.Unmarshal(doc.Data, &r); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode resource: %w", err)
	}
	return r.Attributes, nil
}

func decodeMany[T any](doc *document) ([]T, error) {
	var rs []Resource[T]
	if err := json.Unmarshal(doc.Data, &rs); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Attributes)
	}
	return out, nil
}
