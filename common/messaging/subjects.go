package messaging

// Subjects published by the sentinel service.
// Follow the pattern: {domain}.{resource}.{action}
const (
	SubjectLogsCreated   = "sentinel.logs.created"
	SubjectAlertsCreated = "sentinel.alerts.created"
	SubjectAlertsUpdated = "sentinel.alerts.updated"

	// SubjectAll matches every sentinel subject.
	SubjectAll = "sentinel.>"
)

// Subjects lists the concrete subjects.
func Subjects() []string {
	return []string{SubjectLogsCreated, SubjectAlertsCreated, SubjectAlertsUpdated}
}
