// Package generator synthesises log and alert records from fixed pools.
package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// Generator produces synthetic records. A fixed non-zero seed makes every
// random choice reproducible; identifiers stay unique regardless of seed.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a Generator. A seed of 0 picks a random seed.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Now returns the generator's current time.
func (g *Generator) Now() time.Time {
	return g.now()
}

// Log returns a random log record stamped with the current time.
func (g *Generator) Log() models.LogRecord {
	return g.LogAt(g.now())
}

// LogAt returns a random log record stamped with ts.
func (g *Generator) LogAt(ts time.Time) models.LogRecord {
	source := models.LogSources[g.faker.Number(0, len(models.LogSources)-1)]
	templates := logMessages[source]
	tmpl := templates[g.faker.Number(0, len(templates)-1)]

	return models.LogRecord{
		ID:        models.NewLogID(),
		Timestamp: ts,
		Source:    source,
		Level:     tmpl.level,
		IP:        g.address(),
		Message:   tmpl.message,
	}
}

// Historical returns count records spread uniformly over the preceding
// hoursBack hours, newest first.
func (g *Generator) Historical(count, hoursBack int) ([]models.LogRecord, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: seed log count must be >= 0, got %d", models.ErrInvalidInput, count)
	}
	if hoursBack < 0 {
		return nil, fmt.Errorf("%w: seed hours back must be >= 0, got %d", models.ErrInvalidInput, hoursBack)
	}

	now := g.now()
	span := time.Duration(hoursBack) * time.Hour
	start := now.Add(-span)

	logs := make([]models.LogRecord, 0, count)
	for i := 0; i < count; i++ {
		ts := now
		if span > 0 {
			ts = start.Add(g.Duration(0, span))
		}
		logs = append(logs, g.LogAt(ts))
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs, nil
}

// Alert returns a random active alert from the suspicious address pool.
func (g *Generator) Alert() models.AlertRecord {
	alertType := models.AlertTypes[g.faker.Number(0, len(models.AlertTypes)-1)]
	severity := models.AlertSeverities[g.faker.Number(0, len(models.AlertSeverities)-1)]
	ip := g.faker.RandomString(SuspiciousIPs)

	return models.AlertRecord{
		ID:          models.NewAlertID(),
		Type:        alertType,
		Severity:    severity,
		CreatedAt:   g.now(),
		Status:      models.StatusActive,
		RelatedLogs: []models.LogRecord{},
		Description: g.describe(alertType, ip),
		SourceIP:    ip,
	}
}

// Duration returns a uniformly distributed duration in [min, max).
// It returns min when the range is empty.
func (g *Generator) Duration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(g.faker.Rand.Int63n(int64(max-min)))
}

// Score returns a uniformly distributed integer in [min, max).
func (g *Generator) Score(min, max int) int {
	if max <= min {
		return min
	}
	return g.faker.Number(min, max-1)
}

// address picks from the internal, external and suspicious pools combined.
func (g *Generator) address() string {
	total := len(InternalIPs) + len(ExternalIPs) + len(SuspiciousIPs)
	i := g.faker.Number(0, total-1)
	switch {
	case i < len(InternalIPs):
		return InternalIPs[i]
	case i < len(InternalIPs)+len(ExternalIPs):
		return ExternalIPs[i-len(InternalIPs)]
	default:
		return SuspiciousIPs[i-len(InternalIPs)-len(ExternalIPs)]
	}
}

func (g *Generator) describe(alertType models.AlertType, ip string) string {
	templates := alertDescriptions[alertType]
	tmpl := templates[g.faker.Number(0, len(templates)-1)]
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, ip)
	}
	return tmpl
}
