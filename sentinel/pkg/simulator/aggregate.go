package simulator

import (
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/generator"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// DefaultTopLimit is used when a non-positive limit is requested.
const DefaultTopLimit = 10

// Threat score bands. Suspicious addresses score in [60,100), the rest in [10,40).
const (
	suspiciousScoreMin = 60
	suspiciousScoreMax = 100
	normalScoreMin     = 10
	normalScoreMax     = 40
)

// ThreatScorer assigns a threat score in [0,100] to an address.
type ThreatScorer interface {
	Score(ip string) int
}

// HashScorer derives a stable score from the seed and the address, so an
// address keeps its score across recomputations.
type HashScorer struct {
	Seed int64
}

func (s HashScorer) Score(ip string) int {
	h := xxhash.Sum64String(strconv.FormatInt(s.Seed, 10) + ":" + ip)
	return scoreInBand(ip, h)
}

// JitterScorer draws a fresh score for every call.
type JitterScorer struct {
	Gen *generator.Generator
}

func (s JitterScorer) Score(ip string) int {
	if generator.IsSuspicious(ip) {
		return s.Gen.Score(suspiciousScoreMin, suspiciousScoreMax)
	}
	return s.Gen.Score(normalScoreMin, normalScoreMax)
}

func scoreInBand(ip string, h uint64) int {
	if generator.IsSuspicious(ip) {
		return suspiciousScoreMin + int(h%uint64(suspiciousScoreMax-suspiciousScoreMin))
	}
	return normalScoreMin + int(h%uint64(normalScoreMax-normalScoreMin))
}

// GroupAddresses counts logs per address and records the latest timestamp of
// each. The result is sorted by count descending, then by address.
func GroupAddresses(logs []models.LogRecord, scorer ThreatScorer) []models.AddressStat {
	if len(logs) == 0 {
		return []models.AddressStat{}
	}

	index := make(map[string]int)
	stats := make([]models.AddressStat, 0)
	for _, log := range logs {
		i, ok := index[log.IP]
		if !ok {
			index[log.IP] = len(stats)
			stats = append(stats, models.AddressStat{IP: log.IP, LastSeen: log.Timestamp})
			i = len(stats) - 1
		}
		stats[i].RequestCount++
		if log.Timestamp.After(stats[i].LastSeen) {
			stats[i].LastSeen = log.Timestamp
		}
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].IP < stats[j].IP
	})

	if scorer != nil {
		for i := range stats {
			stats[i].ThreatScore = scorer.Score(stats[i].IP)
		}
	}
	return stats
}

// ComputeTopAddresses returns the limit busiest addresses in logs.
// A non-positive limit means DefaultTopLimit.
func ComputeTopAddresses(logs []models.LogRecord, limit int, scorer ThreatScorer) []models.AddressStat {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	stats := GroupAddresses(logs, scorer)
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}
