package attacks

import (
	"time"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// DDoSInterval separates consecutive requests in a flood burst.
const DDoSInterval = 50 * time.Millisecond

// DDoSPattern emits a high-frequency request flood from a single address.
type DDoSPattern struct{}

func init() {
	Register(&DDoSPattern{})
}

func (p *DDoSPattern) Name() string { return "ddos" }

func (p *DDoSPattern) Description() string {
	return "Request flood - firewall hits from one address, 50ms apart"
}

func (p *DDoSPattern) DefaultCount() int { return 150 }

func (p *DDoSPattern) Generate(address string, count int, now time.Time) ([]models.LogRecord, error) {
	return DDoS(address, count, now)
}

// DDoS returns count firewall/warn records for address, 50 milliseconds apart, ending at now.
func DDoS(address string, count int, now time.Time) ([]models.LogRecord, error) {
	return burst(address, count, DDoSInterval, now, models.SourceFirewall, "High frequency request detected")
}
