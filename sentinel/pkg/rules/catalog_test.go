package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 8)
	assert.Equal(t, "rule_001", all[0].ID)
	assert.Equal(t, "rule_008", all[7].ID)

	bf := all[0]
	assert.Equal(t, "Brute Force Detection", bf.Name)
	assert.Equal(t, models.ConditionThreshold, bf.Condition.Type)
	assert.Equal(t, "failed_login_count", bf.Condition.Field)
	assert.Equal(t, "gt", bf.Condition.Operator)
	assert.Equal(t, 5, bf.Condition.Value)
	assert.Equal(t, 60, bf.Condition.TimeWindowSeconds)
	assert.Equal(t, models.SeverityCritical, bf.Severity)
	assert.True(t, bf.Enabled)
	assert.Equal(t, 23, bf.HitCount)
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "changed"
	assert.Equal(t, "Brute Force Detection", All()[0].Name)
}

func TestByID(t *testing.T) {
	r, ok := ByID("rule_003")
	require.True(t, ok)
	assert.Equal(t, "Suspicious Endpoint Access", r.Name)
	assert.Equal(t, "^/(admin|config|debug|internal)", r.Condition.Value)
	assert.Zero(t, r.Condition.TimeWindowSeconds)

	_, ok = ByID("rule_999")
	assert.False(t, ok)
}

func TestActive(t *testing.T) {
	active := Active()
	assert.Len(t, active, 7)
	for _, r := range active {
		assert.True(t, r.Enabled)
		assert.NotEqual(t, "rule_006", r.ID)
	}
}

func TestStats(t *testing.T) {
	stats := Stats()
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 7, stats.Active)
	assert.Equal(t, 1, stats.Disabled)
	assert.Equal(t, 256, stats.TotalHits)
	assert.Equal(t, map[models.AlertSeverity]int{
		models.SeverityCritical: 4,
		models.SeverityHigh:     2,
		models.SeverityMedium:   1,
		models.SeverityLow:      1,
	}, stats.BySeverity)
}

func TestSummarize_Empty(t *testing.T) {
	stats := Summarize(nil)
	assert.Zero(t, stats.Total)
	assert.Len(t, stats.BySeverity, 4)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "- id: [unterminated"},
		{"missing id", "- name: x\n  severity: low\n"},
		{"duplicate id", "- id: a\n  severity: low\n- id: a\n  severity: low\n"},
		{"bad severity", "- id: a\n  severity: urgent\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
