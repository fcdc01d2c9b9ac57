package models

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidInput is returned when a caller passes arguments that cannot be
// honoured, such as negative counts. Values are never silently clamped.
var ErrInvalidInput = errors.New("invalid input")

// NewLogID returns a process-unique log identifier.
func NewLogID() string {
	return "log_" + uuid.NewString()
}

// NewAlertID returns a process-unique alert identifier.
func NewAlertID() string {
	return "alert_" + uuid.NewString()
}
