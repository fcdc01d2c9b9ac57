package models

import "time"

// AddressStat is a per-address aggregate derived from the log buffer.
type AddressStat struct {
	IP           string    `json:"ip" yaml:"ip"`
	RequestCount int       `json:"request_count" yaml:"request_count"`
	ThreatScore  int       `json:"threat_score" yaml:"threat_score"`
	LastSeen     time.Time `json:"last_seen" yaml:"last_seen"`
}

// DashboardStats summarises the current buffers for the dashboard.
type DashboardStats struct {
	TotalLogs          int `json:"total_logs" yaml:"total_logs"`
	LogsPerMinute      int `json:"logs_per_minute" yaml:"logs_per_minute"`
	ActiveAlerts       int `json:"active_alerts" yaml:"active_alerts"`
	AcknowledgedAlerts int `json:"acknowledged_alerts" yaml:"acknowledged_alerts"`
	ResolvedAlerts     int `json:"resolved_alerts" yaml:"resolved_alerts"`
	CriticalAlerts     int `json:"critical_alerts" yaml:"critical_alerts"`
}

// AlertStats breaks the alert buffer down by status and severity.
type AlertStats struct {
	Total        int `json:"total" yaml:"total"`
	Active       int `json:"active" yaml:"active"`
	Acknowledged int `json:"acknowledged" yaml:"acknowledged"`
	Resolved     int `json:"resolved" yaml:"resolved"`
	Critical     int `json:"critical" yaml:"critical"`
	High         int `json:"high" yaml:"high"`
	Medium       int `json:"medium" yaml:"medium"`
	Low          int `json:"low" yaml:"low"`
}
