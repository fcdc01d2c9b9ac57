package generator

import "github.com/telhawk-systems/minisentinel/sentinel/pkg/models"

// Address pools the generator draws from. The suspicious pool doubles as the
// reference set used to bias threat scores.
var (
	InternalIPs = []string{
		"192.168.1.10", "192.168.1.25", "192.168.1.50", "192.168.1.100",
		"10.0.0.5", "10.0.0.12", "10.0.0.88", "10.0.1.15",
	}
	ExternalIPs = []string{
		"203.45.67.89", "185.220.101.42", "45.33.32.156", "104.18.21.226",
		"172.217.14.110", "151.101.1.140", "93.184.216.34", "52.94.236.248",
	}
	SuspiciousIPs = []string{
		"185.143.223.12", "45.155.205.33", "89.248.167.131", "162.247.74.7",
		"23.129.64.100", "77.247.181.162", "185.220.100.252", "171.25.193.77",
	}
)

var suspiciousSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(SuspiciousIPs))
	for _, ip := range SuspiciousIPs {
		set[ip] = struct{}{}
	}
	return set
}()

// IsSuspicious reports whether ip belongs to the known suspicious pool.
func IsSuspicious(ip string) bool {
	_, ok := suspiciousSet[ip]
	return ok
}

type messageTemplate struct {
	level   models.LogLevel
	message string
}

var logMessages = map[models.LogSource][]messageTemplate{
	models.SourceAuth: {
		{models.LevelInfo, "User login successful"},
		{models.LevelInfo, "Password changed for user account"},
		{models.LevelWarn, "Failed login attempt - invalid password"},
		{models.LevelWarn, "Multiple failed login attempts detected"},
		{models.LevelError, "Authentication service timeout"},
		{models.LevelError, "Invalid token - session expired"},
		{models.LevelDebug, "Session token refreshed"},
	},
	models.SourceFirewall: {
		{models.LevelInfo, "Connection allowed from trusted network"},
		{models.LevelWarn, "Blocked connection attempt to restricted port"},
		{models.LevelWarn, "Suspicious port scan detected"},
		{models.LevelError, "DDoS attack pattern detected"},
		{models.LevelError, "Blocked malicious payload"},
		{models.LevelDebug, "Firewall rule updated"},
	},
	models.SourceApp: {
		{models.LevelInfo, "API request processed successfully"},
		{models.LevelInfo, "Cache refreshed for endpoint"},
		{models.LevelWarn, "Rate limit threshold reached"},
		{models.LevelWarn, "Deprecated API endpoint accessed"},
		{models.LevelError, "Unhandled exception in request handler"},
		{models.LevelError, "Service unavailable - circuit breaker open"},
		{models.LevelDebug, "Request processed in 42ms"},
	},
	models.SourceDatabase: {
		{models.LevelInfo, "Query executed successfully"},
		{models.LevelInfo, "Connection pool initialized"},
		{models.LevelWarn, "Slow query detected (>1000ms)"},
		{models.LevelWarn, "Connection pool nearing capacity"},
		{models.LevelError, "Database connection failed"},
		{models.LevelError, "Transaction deadlock detected"},
		{models.LevelDebug, "Query plan optimized"},
	},
	models.SourceNetwork: {
		{models.LevelInfo, "New connection established"},
		{models.LevelInfo, "SSL certificate validated"},
		{models.LevelWarn, "High latency detected on route"},
		{models.LevelWarn, "Packet loss exceeds threshold"},
		{models.LevelError, "Connection reset by peer"},
		{models.LevelError, "DNS resolution failed"},
		{models.LevelDebug, "Keepalive packet sent"},
	},
	models.SourceSystem: {
		{models.LevelInfo, "Service started successfully"},
		{models.LevelInfo, "Configuration reloaded"},
		{models.LevelWarn, "Memory usage exceeds 80%"},
		{models.LevelWarn, "Disk space running low"},
		{models.LevelError, "Out of memory exception"},
		{models.LevelError, "Service crash detected - restarting"},
		{models.LevelDebug, "Garbage collection completed"},
	},
}

// alertDescriptions are formatted with the alert's source address.
var alertDescriptions = map[models.AlertType][]string{
	models.AlertBruteForce: {
		"Multiple failed login attempts from %s",
		"Brute force attack detected from %s",
		"Password guessing attack in progress from %s",
	},
	models.AlertDDoS: {
		"High request rate detected from %s",
		"DDoS attack pattern identified from %s",
		"Request flooding detected from %s",
	},
	models.AlertSuspiciousAccess: {
		"Unauthorized access attempt to admin panel from %s",
		"Blocked access to restricted endpoint from %s",
		"Attempted SQL injection from %s",
	},
	models.AlertAnomaly: {
		"Unusual traffic pattern detected",
		"Abnormal data transfer volume detected",
		"Suspicious behavior pattern identified",
	},
}
