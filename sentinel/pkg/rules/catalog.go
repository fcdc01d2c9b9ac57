// Package rules exposes the static detection rule catalog.
package rules

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

var (
	loadOnce sync.Once
	catalog  []models.Rule
	loadErr  error
)

// Parse decodes a YAML rule list and checks every entry.
func Parse(data []byte) ([]models.Rule, error) {
	var list []models.Rule
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse rule catalog: %w", err)
	}

	seen := make(map[string]bool, len(list))
	for i, r := range list {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: rule %d has no id", models.ErrInvalidInput, i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate rule id %q", models.ErrInvalidInput, r.ID)
		}
		if !r.Severity.Valid() {
			return nil, fmt.Errorf("%w: rule %s has unknown severity %q", models.ErrInvalidInput, r.ID, r.Severity)
		}
		seen[r.ID] = true
	}
	return list, nil
}

func load() []models.Rule {
	loadOnce.Do(func() {
		catalog, loadErr = Parse(catalogYAML)
	})
	if loadErr != nil {
		// embedded data is fixed at build time
		panic(loadErr)
	}
	return catalog
}

func cloneRules(in []models.Rule) []models.Rule {
	out := make([]models.Rule, len(in))
	copy(out, in)
	return out
}

// All returns every rule in catalog order.
func All() []models.Rule {
	return cloneRules(load())
}

// ByID looks up a rule.
func ByID(id string) (models.Rule, bool) {
	for _, r := range load() {
		if r.ID == id {
			return r, true
		}
	}
	return models.Rule{}, false
}

// Active returns the enabled rules.
func Active() []models.Rule {
	var out []models.Rule
	for _, r := range load() {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// Summarize counts rules by state and severity.
func Summarize(rules []models.Rule) models.RuleStats {
	stats := models.RuleStats{
		Total:      len(rules),
		BySeverity: make(map[models.AlertSeverity]int, len(models.AlertSeverities)),
	}
	for _, sev := range models.AlertSeverities {
		stats.BySeverity[sev] = 0
	}
	for _, r := range rules {
		if r.Enabled {
			stats.Active++
		} else {
			stats.Disabled++
		}
		stats.TotalHits += r.HitCount
		stats.BySeverity[r.Severity]++
	}
	return stats
}

// Stats summarises the embedded catalog.
func Stats() models.RuleStats {
	return Summarize(load())
}
