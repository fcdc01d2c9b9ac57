package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Detection rule catalog",
	Long:  "Browse the detection rule catalog. Rules are descriptive and never evaluated.",
}

var rulesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List detection rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, _ := cmd.Flags().GetBool("enabled")

		rules, err := apiClient().Rules(cmd.Context(), enabled)
		if err != nil {
			return fmt.Errorf("failed to list rules: %w", err)
		}

		if ok, err := output.Structured(format(), rules); ok {
			return err
		}

		if len(rules) == 0 {
			output.Info("No detection rules found")
			return nil
		}

		table := output.NewTable([]string{"ID", "Name", "Condition", "Severity", "Status", "Hits"})
		for _, r := range rules {
			table.AddRow([]string{
				r.ID,
				r.Name,
				string(r.Condition.Type),
				output.Severity(string(r.Severity)),
				ruleStatus(r),
				strconv.Itoa(r.HitCount),
			})
		}
		table.Render()
		return nil
	},
}

var rulesShowCmd = &cobra.Command{
	Use:     "show [id]",
	Aliases: []string{"get"},
	Short:   "Show a detection rule",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rule, err := apiClient().Rule(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get rule: %w", err)
		}

		if ok, err := output.Structured(format(), rule); ok {
			return err
		}

		output.Info("Rule: %s", rule.Name)
		output.Info("ID: %s", rule.ID)
		output.Info("Description: %s", rule.Description)
		output.Info("Severity: %s", output.Severity(string(rule.Severity)))
		output.Info("Status: %s", ruleStatus(rule))
		output.Info("Hits: %d", rule.HitCount)
		output.Info("\nCondition:")
		output.Info("  Type: %s", rule.Condition.Type)
		output.Info("  Match: %s %s %v", rule.Condition.Field, rule.Condition.Operator, rule.Condition.Value)
		if rule.Condition.TimeWindowSeconds > 0 {
			output.Info("  Window: %ds", rule.Condition.TimeWindowSeconds)
		}
		return nil
	},
}

var rulesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the rule catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := apiClient().RuleStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get rule stats: %w", err)
		}

		if ok, err := output.Structured(format(), stats); ok {
			return err
		}

		output.Info("Total: %d (active %d, disabled %d)", stats.Total, stats.Active, stats.Disabled)
		output.Info("Total hits: %d", stats.TotalHits)

		severities := make([]string, 0, len(stats.BySeverity))
		for s := range stats.BySeverity {
			severities = append(severities, string(s))
		}
		sort.Slice(severities, func(i, j int) bool {
			return severityRank(severities[i]) < severityRank(severities[j])
		})

		table := output.NewTable([]string{"Severity", "Rules"})
		for _, s := range severities {
			table.AddRow([]string{output.Severity(s), strconv.Itoa(stats.BySeverity[models.AlertSeverity(s)])})
		}
		table.Render()
		return nil
	},
}

func ruleStatus(r models.Rule) string {
	if r.Enabled {
		return "enabled"
	}
	return "disabled"
}

func severityRank(s string) int {
	for i, sev := range models.AlertSeverities {
		if string(sev) == s {
			return i
		}
	}
	return len(models.AlertSeverities)
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesStatsCmd)

	rulesListCmd.Flags().Bool("enabled", false, "only list enabled rules")
}
