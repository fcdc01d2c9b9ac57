package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

func alert(status models.AlertStatus, severity models.AlertSeverity) models.AlertRecord {
	return models.AlertRecord{ID: models.NewAlertID(), Status: status, Severity: severity}
}

func TestDeriveStats_Empty(t *testing.T) {
	stats := DeriveStats(nil, nil, 0)
	assert.Equal(t, models.DashboardStats{}, stats)
}

func TestDeriveStats_Counts(t *testing.T) {
	alerts := []models.AlertRecord{
		alert(models.StatusActive, models.SeverityCritical),
		alert(models.StatusActive, models.SeverityLow),
		alert(models.StatusActive, models.SeverityHigh),
		alert(models.StatusAcknowledged, models.SeverityMedium),
		alert(models.StatusAcknowledged, models.SeverityCritical),
		alert(models.StatusResolved, models.SeverityCritical),
	}
	logs := make([]models.LogRecord, 42)

	stats := DeriveStats(logs, alerts, 2)
	assert.Equal(t, 42, stats.TotalLogs)
	assert.Equal(t, 120, stats.LogsPerMinute)
	assert.Equal(t, 3, stats.ActiveAlerts)
	assert.Equal(t, 2, stats.AcknowledgedAlerts)
	assert.Equal(t, 1, stats.ResolvedAlerts)
	assert.Equal(t, 2, stats.CriticalAlerts)
}

func TestComputeAlertStats(t *testing.T) {
	alerts := []models.AlertRecord{
		alert(models.StatusActive, models.SeverityCritical),
		alert(models.StatusResolved, models.SeverityCritical),
		alert(models.StatusAcknowledged, models.SeverityLow),
	}

	stats := ComputeAlertStats(alerts)
	assert.Equal(t, models.AlertStats{
		Total:        3,
		Active:       1,
		Acknowledged: 1,
		Resolved:     1,
		Critical:     2,
		Low:          1,
	}, stats)
}
