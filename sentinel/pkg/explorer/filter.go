// Package explorer filters and paginates simulator buffers for browsing.
package explorer

import (
	"fmt"
	"strings"
	"time"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// Page size bounds.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// LogFilter selects log records. Zero fields match everything.
type LogFilter struct {
	// Search matches message or source case-insensitively, or a substring of the IP.
	Search string
	Level  models.LogLevel
	Source models.LogSource
	IP     string
	From   time.Time
	To     time.Time
}

// Validate rejects unknown enum values and inverted time ranges.
func (f LogFilter) Validate() error {
	if f.Level != "" && !f.Level.Valid() {
		return fmt.Errorf("%w: unknown level %q", models.ErrInvalidInput, f.Level)
	}
	if f.Source != "" && !f.Source.Valid() {
		return fmt.Errorf("%w: unknown source %q", models.ErrInvalidInput, f.Source)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return fmt.Errorf("%w: time range ends before it starts", models.ErrInvalidInput)
	}
	return nil
}

// Match reports whether log passes every set criterion.
func (f LogFilter) Match(log models.LogRecord) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(log.Message), q) &&
			!strings.Contains(log.IP, f.Search) &&
			!strings.Contains(string(log.Source), q) {
			return false
		}
	}
	if f.Level != "" && log.Level != f.Level {
		return false
	}
	if f.Source != "" && log.Source != f.Source {
		return false
	}
	if f.IP != "" && !strings.Contains(log.IP, f.IP) {
		return false
	}
	if !f.From.IsZero() && log.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && log.Timestamp.After(f.To) {
		return false
	}
	return true
}

// Logs returns the records matching f, preserving order.
func (f LogFilter) Logs(logs []models.LogRecord) []models.LogRecord {
	out := make([]models.LogRecord, 0, len(logs))
	for _, l := range logs {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

// AlertFilter selects alerts by status and severity.
type AlertFilter struct {
	Status   models.AlertStatus
	Severity models.AlertSeverity
}

func (f AlertFilter) Validate() error {
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, f.Status)
	}
	if f.Severity != "" && !f.Severity.Valid() {
		return fmt.Errorf("%w: unknown severity %q", models.ErrInvalidInput, f.Severity)
	}
	return nil
}

func (f AlertFilter) Match(alert models.AlertRecord) bool {
	if f.Status != "" && alert.Status != f.Status {
		return false
	}
	return f.Severity == "" || alert.Severity == f.Severity
}

// Alerts returns the alerts matching f, preserving order.
func (f AlertFilter) Alerts(alerts []models.AlertRecord) []models.AlertRecord {
	out := make([]models.AlertRecord, 0, len(alerts))
	for _, a := range alerts {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}
