package models

// ConditionType describes how a rule condition would be matched.
type ConditionType string

const (
	ConditionThreshold ConditionType = "threshold"
	ConditionPattern   ConditionType = "pattern"
	ConditionFrequency ConditionType = "frequency"
)

// RuleCondition is descriptive only; conditions are never evaluated.
type RuleCondition struct {
	Type              ConditionType `json:"type" yaml:"type"`
	Field             string        `json:"field" yaml:"field"`
	Operator          string        `json:"operator" yaml:"operator"` // gt, lt, eq, contains, matches
	Value             any           `json:"value" yaml:"value"`
	TimeWindowSeconds int           `json:"time_window_seconds,omitempty" yaml:"time_window_seconds,omitempty"`
}

// Rule is an entry in the static detection rule catalog.
type Rule struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Condition   RuleCondition `json:"condition" yaml:"condition"`
	Severity    AlertSeverity `json:"severity" yaml:"severity"`
	Enabled     bool          `json:"enabled" yaml:"enabled"`
	HitCount    int           `json:"hit_count" yaml:"hit_count"`
}

// RuleStats summarises the rule catalog.
type RuleStats struct {
	Total      int                   `json:"total" yaml:"total"`
	Active     int                   `json:"active" yaml:"active"`
	Disabled   int                   `json:"disabled" yaml:"disabled"`
	TotalHits  int                   `json:"total_hits" yaml:"total_hits"`
	BySeverity map[AlertSeverity]int `json:"by_severity" yaml:"by_severity"`
}
