package simulator

import (
	"math"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// DeriveStats summarises the buffers. LogsPerMinute is the configured rate
// scaled to a minute, not a measurement.
func DeriveStats(logs []models.LogRecord, alerts []models.AlertRecord, logsPerSecond float64) models.DashboardStats {
	stats := models.DashboardStats{
		TotalLogs:     len(logs),
		LogsPerMinute: int(math.Round(logsPerSecond * 60)),
	}
	for _, a := range alerts {
		switch a.Status {
		case models.StatusActive:
			stats.ActiveAlerts++
		case models.StatusAcknowledged:
			stats.AcknowledgedAlerts++
		case models.StatusResolved:
			stats.ResolvedAlerts++
		}
		if a.Severity == models.SeverityCritical && a.Status != models.StatusResolved {
			stats.CriticalAlerts++
		}
	}
	return stats
}

// ComputeAlertStats counts alerts by status and by severity.
func ComputeAlertStats(alerts []models.AlertRecord) models.AlertStats {
	stats := models.AlertStats{Total: len(alerts)}
	for _, a := range alerts {
		switch a.Status {
		case models.StatusActive:
			stats.Active++
		case models.StatusAcknowledged:
			stats.Acknowledged++
		case models.StatusResolved:
			stats.Resolved++
		}
		switch a.Severity {
		case models.SeverityCritical:
			stats.Critical++
		case models.SeverityHigh:
			stats.High++
		case models.SeverityMedium:
			stats.Medium++
		case models.SeverityLow:
			stats.Low++
		}
	}
	return stats
}
