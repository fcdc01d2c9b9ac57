package simulator

import (
	"fmt"
	"time"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// ErrInvalidInput is returned for negative counts and malformed configuration.
var ErrInvalidInput = models.ErrInvalidInput

// Range is a half-open delay interval [Min, Max).
type Range struct {
	Min time.Duration
	Max time.Duration
}

func (r Range) validate(name string) error {
	if r.Min < 0 || r.Max < r.Min {
		return fmt.Errorf("%w: %s range [%s, %s) is invalid", ErrInvalidInput, name, r.Min, r.Max)
	}
	return nil
}

// Config controls buffer sizes and the production schedule.
type Config struct {
	// Capacity is the maximum number of records in the log buffer.
	Capacity int

	// TopLimit caps the number of addresses in the top-address aggregate.
	TopLimit int

	// LogsPerSecond is informational and only feeds the derived stats.
	LogsPerSecond float64

	// Seed drives every random choice. 0 picks a random seed.
	Seed int64

	// JitterThreatScores re-rolls threat scores on every aggregation pass
	// instead of deriving them from the address.
	JitterThreatScores bool

	LogStartDelay   Range
	LogInterval     Range
	AlertStartDelay Range
	AlertInterval   Range
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:        1000,
		TopLimit:        10,
		LogsPerSecond:   2,
		LogStartDelay:   Range{Min: 3 * time.Second, Max: 5 * time.Second},
		LogInterval:     Range{Min: 10 * time.Second, Max: 20 * time.Second},
		AlertStartDelay: Range{Min: 5 * time.Second, Max: 10 * time.Second},
		AlertInterval:   Range{Min: 15 * time.Second, Max: 30 * time.Second},
	}
}

// Validate rejects negative sizes and inverted delay ranges.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be >= 0, got %d", ErrInvalidInput, c.Capacity)
	}
	if c.TopLimit < 0 {
		return fmt.Errorf("%w: top limit must be >= 0, got %d", ErrInvalidInput, c.TopLimit)
	}
	if c.LogsPerSecond < 0 {
		return fmt.Errorf("%w: logs per second must be >= 0, got %v", ErrInvalidInput, c.LogsPerSecond)
	}
	for name, r := range map[string]Range{
		"log start delay":   c.LogStartDelay,
		"log interval":      c.LogInterval,
		"alert start delay": c.AlertStartDelay,
		"alert interval":    c.AlertInterval,
	} {
		if err := r.validate(name); err != nil {
			return err
		}
	}
	return nil
}
