package attacks

import (
	"time"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// BruteForceInterval separates consecutive failed logins in a brute force burst.
const BruteForceInterval = 2 * time.Second

// BruteForcePattern emits failed password attempts from a single address.
type BruteForcePattern struct{}

func init() {
	Register(&BruteForcePattern{})
}

func (p *BruteForcePattern) Name() string { return "brute_force" }

func (p *BruteForcePattern) Description() string {
	return "Password guessing - repeated failed logins from one address, 2s apart"
}

func (p *BruteForcePattern) DefaultCount() int { return 10 }

func (p *BruteForcePattern) Generate(address string, count int, now time.Time) ([]models.LogRecord, error) {
	return BruteForce(address, count, now)
}

// BruteForce returns count auth/warn records for address, 2 seconds apart, ending at now.
func BruteForce(address string, count int, now time.Time) ([]models.LogRecord, error) {
	return burst(address, count, BruteForceInterval, now, models.SourceAuth, "Failed login attempt - invalid password")
}
