package logging

import (
	"log/slog"
	"time"
)

// Common field names for consistent logging.
const (
	FieldService   = "service"
	FieldRequestID = "request_id"
	FieldIP        = "ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldLogID     = "log_id"
	FieldAlertID   = "alert_id"
	FieldJob       = "job"
	FieldSubject   = "subject"
)

func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

func RequestID(id string) slog.Attr {
	return slog.String(FieldRequestID, id)
}

func IP(ip string) slog.Attr {
	return slog.String(FieldIP, ip)
}

func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Int64(FieldDuration, d.Milliseconds())
}

// Error returns a slog attribute for an error. A nil error yields an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

func LogID(id string) slog.Attr {
	return slog.String(FieldLogID, id)
}

func AlertID(id string) slog.Attr {
	return slog.String(FieldAlertID, id)
}

// Job returns a slog attribute for a scheduler job name.
func Job(name string) slog.Attr {
	return slog.String(FieldJob, name)
}

// Subject returns a slog attribute for a messaging subject.
func Subject(subject string) slog.Attr {
	return slog.String(FieldSubject, subject)
}
