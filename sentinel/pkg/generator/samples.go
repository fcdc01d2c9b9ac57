package generator

import (
	"time"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/attacks"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// SampleAlerts returns the fixed demonstration alert set, newest first.
// Two of the alerts carry correlated attack bursts as evidence.
func (g *Generator) SampleAlerts() []models.AlertRecord {
	now := g.now()

	// Burst sizes are constant and positive, so the generators cannot fail.
	// Each burst ends at the moment its alert was raised.
	bruteForce, _ := attacks.BruteForce("185.143.223.12", 8, now.Add(-5*time.Minute))
	ddos, _ := attacks.DDoS("45.155.205.33", 120, now.Add(-15*time.Minute))
	blocked, _ := attacks.BruteForce("23.129.64.100", 6, now.Add(-4*time.Hour))

	return []models.AlertRecord{
		{
			ID:          models.NewAlertID(),
			Type:        models.AlertBruteForce,
			Severity:    models.SeverityCritical,
			CreatedAt:   now.Add(-5 * time.Minute),
			Status:      models.StatusActive,
			RelatedLogs: bruteForce,
			Description: "Brute force attack detected: 8 failed login attempts in 60 seconds",
			SourceIP:    "185.143.223.12",
		},
		{
			ID:          models.NewAlertID(),
			Type:        models.AlertDDoS,
			Severity:    models.SeverityCritical,
			CreatedAt:   now.Add(-15 * time.Minute),
			Status:      models.StatusAcknowledged,
			RelatedLogs: ddos,
			Description: "DDoS attack detected: 120 requests in 10 seconds from single IP",
			SourceIP:    "45.155.205.33",
		},
		{
			ID:          models.NewAlertID(),
			Type:        models.AlertSuspiciousAccess,
			Severity:    models.SeverityHigh,
			CreatedAt:   now.Add(-30 * time.Minute),
			Status:      models.StatusActive,
			RelatedLogs: []models.LogRecord{},
			Description: "Access attempt to /admin/config from unauthorized IP",
			SourceIP:    "89.248.167.131",
		},
		{
			ID:          models.NewAlertID(),
			Type:        models.AlertAnomaly,
			Severity:    models.SeverityMedium,
			CreatedAt:   now.Add(-2 * time.Hour),
			Status:      models.StatusResolved,
			RelatedLogs: []models.LogRecord{},
			Description: "Unusual traffic pattern detected on port 8080",
			SourceIP:    "162.247.74.7",
		},
		{
			ID:          models.NewAlertID(),
			Type:        models.AlertBruteForce,
			Severity:    models.SeverityHigh,
			CreatedAt:   now.Add(-4 * time.Hour),
			Status:      models.StatusResolved,
			RelatedLogs: blocked,
			Description: "Brute force attempt blocked: 6 failed attempts, IP added to blocklist",
			SourceIP:    "23.129.64.100",
		},
		{
			ID:          models.NewAlertID(),
			Type:        models.AlertSuspiciousAccess,
			Severity:    models.SeverityLow,
			CreatedAt:   now.Add(-8 * time.Hour),
			Status:      models.StatusResolved,
			RelatedLogs: []models.LogRecord{},
			Description: "Attempted access to deprecated API endpoint",
			SourceIP:    "77.247.181.162",
		},
	}
}
