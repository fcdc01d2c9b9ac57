// Package attacks generates correlated bursts of log records that look like
// known attack techniques. The bursts back-fill an alert's evidence trail and
// never touch the simulator buffers on their own.
package attacks

import (
	"fmt"
	"sort"
	"time"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// Pattern is an attack pattern generator.
type Pattern interface {
	// Name returns the registry key (e.g. "brute_force").
	Name() string

	// Description returns a human-readable description.
	Description() string

	// DefaultCount is the burst size used when the caller does not pick one.
	DefaultCount() int

	// Generate returns count records for address, the last one stamped at now.
	Generate(address string, count int, now time.Time) ([]models.LogRecord, error)
}

var registry = make(map[string]Pattern)

// Register adds an attack pattern to the registry.
func Register(p Pattern) {
	registry[p.Name()] = p
}

// Get retrieves an attack pattern by name.
func Get(name string) (Pattern, bool) {
	p, ok := registry[name]
	return p, ok
}

// List returns all registered pattern names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// burst builds count records spaced by step, oldest first, the last one at now.
func burst(address string, count int, step time.Duration, now time.Time, source models.LogSource, message string) ([]models.LogRecord, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: pattern count must be >= 0, got %d", models.ErrInvalidInput, count)
	}

	logs := make([]models.LogRecord, 0, count)
	for i := 0; i < count; i++ {
		logs = append(logs, models.LogRecord{
			ID:        models.NewLogID(),
			Timestamp: now.Add(-time.Duration(count-1-i) * step),
			Source:    source,
			Level:     models.LevelWarn,
			IP:        address,
			Message:   message,
		})
	}
	return logs, nil
}
