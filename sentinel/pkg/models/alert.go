package models

import "time"

// AlertType classifies what kind of activity raised an alert.
type AlertType string

const (
	AlertBruteForce       AlertType = "brute_force"
	AlertDDoS             AlertType = "ddos"
	AlertSuspiciousAccess AlertType = "suspicious_access"
	AlertAnomaly          AlertType = "anomaly"
)

// AlertTypes lists every known alert type.
var AlertTypes = []AlertType{AlertBruteForce, AlertDDoS, AlertSuspiciousAccess, AlertAnomaly}

// AlertSeverity ranks how urgent an alert is.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityHigh     AlertSeverity = "high"
	SeverityMedium   AlertSeverity = "medium"
	SeverityLow      AlertSeverity = "low"
)

// AlertSeverities lists every severity, most urgent first.
var AlertSeverities = []AlertSeverity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Valid reports whether s is a known severity.
func (s AlertSeverity) Valid() bool {
	for _, known := range AlertSeverities {
		if s == known {
			return true
		}
	}
	return false
}

// AlertStatus is the lifecycle state of an alert.
type AlertStatus string

const (
	StatusActive       AlertStatus = "active"
	StatusAcknowledged AlertStatus = "acknowledged"
	StatusResolved     AlertStatus = "resolved"
)

// AlertStatuses lists every status in lifecycle order.
var AlertStatuses = []AlertStatus{StatusActive, StatusAcknowledged, StatusResolved}

// Valid reports whether s is a known status.
func (s AlertStatus) Valid() bool {
	switch s {
	case StatusActive, StatusAcknowledged, StatusResolved:
		return true
	}
	return false
}

// CanTransition reports whether an alert in status s may move to status to.
// Resolved is terminal; acknowledged is only reachable from active.
func (s AlertStatus) CanTransition(to AlertStatus) bool {
	switch s {
	case StatusActive:
		return to == StatusAcknowledged || to == StatusResolved
	case StatusAcknowledged:
		return to == StatusResolved
	default:
		return false
	}
}

// AlertRecord is a raised alert with its supporting evidence.
type AlertRecord struct {
	ID          string        `json:"id" yaml:"id"`
	Type        AlertType     `json:"type" yaml:"type"`
	Severity    AlertSeverity `json:"severity" yaml:"severity"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
	Status      AlertStatus   `json:"status" yaml:"status"`
	RelatedLogs []LogRecord   `json:"related_logs" yaml:"related_logs"`
	Description string        `json:"description" yaml:"description"`
	SourceIP    string        `json:"source_ip,omitempty" yaml:"source_ip,omitempty"`
}

// Clone returns a copy of a that shares no slices with the original.
func (a AlertRecord) Clone() AlertRecord {
	if a.RelatedLogs != nil {
		logs := make([]LogRecord, len(a.RelatedLogs))
		copy(logs, a.RelatedLogs)
		a.RelatedLogs = logs
	}
	return a
}
