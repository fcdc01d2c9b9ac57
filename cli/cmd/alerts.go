package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Alert triage",
	Long:  "List, inspect, acknowledge and resolve alerts raised by the simulator",
}

var alertsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List alerts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		severity, _ := cmd.Flags().GetString("severity")

		alerts, err := apiClient().Alerts(cmd.Context(), status, severity)
		if err != nil {
			return fmt.Errorf("failed to list alerts: %w", err)
		}

		if ok, err := output.Structured(format(), alerts); ok {
			return err
		}

		if len(alerts) == 0 {
			output.Info("No alerts found")
			return nil
		}

		table := output.NewTable([]string{"ID", "Type", "Severity", "Status", "Source IP", "Logs", "Created"})
		for _, a := range alerts {
			table.AddRow([]string{
				a.ID,
				string(a.Type),
				output.Severity(string(a.Severity)),
				string(a.Status),
				a.SourceIP,
				strconv.Itoa(len(a.RelatedLogs)),
				a.CreatedAt.Local().Format(timeFormat),
			})
		}
		table.Render()
		output.Info("\n%d alerts", len(alerts))
		return nil
	},
}

var alertsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Get alert details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alert, err := apiClient().Alert(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get alert: %w", err)
		}

		if ok, err := output.Structured(format(), alert); ok {
			return err
		}
		printAlert(alert)
		return nil
	},
}

var alertsAckCmd = &cobra.Command{
	Use:     "ack [id]",
	Aliases: []string{"acknowledge"},
	Short:   "Acknowledge an active alert",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alert, found, err := apiClient().Acknowledge(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to acknowledge alert: %w", err)
		}
		return reportTransition(args[0], alert, found, models.StatusAcknowledged)
	},
}

var alertsResolveCmd = &cobra.Command{
	Use:   "resolve [id]",
	Short: "Resolve an active or acknowledged alert",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alert, found, err := apiClient().Resolve(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve alert: %w", err)
		}
		return reportTransition(args[0], alert, found, models.StatusResolved)
	},
}

var alertsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Alert counts by status and severity",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := apiClient().AlertStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get alert stats: %w", err)
		}

		if ok, err := output.Structured(format(), stats); ok {
			return err
		}

		table := output.NewTable([]string{"Total", "Active", "Acknowledged", "Resolved", "Critical", "High", "Medium", "Low"})
		table.AddRow([]string{
			strconv.Itoa(stats.Total),
			strconv.Itoa(stats.Active),
			strconv.Itoa(stats.Acknowledged),
			strconv.Itoa(stats.Resolved),
			strconv.Itoa(stats.Critical),
			strconv.Itoa(stats.High),
			strconv.Itoa(stats.Medium),
			strconv.Itoa(stats.Low),
		})
		table.Render()
		return nil
	},
}

// reportTransition prints the outcome of ack or resolve. Unknown ids and
// disallowed transitions are reported, not treated as errors.
func reportTransition(id string, alert models.AlertRecord, found bool, want models.AlertStatus) error {
	if !found {
		output.Warn("Alert %s not found, nothing changed", id)
		return nil
	}
	if ok, err := output.Structured(format(), alert); ok {
		return err
	}
	if alert.Status != want {
		output.Warn("Alert %s is %s, nothing changed", id, alert.Status)
		return nil
	}
	output.Success("Alert %s is now %s", id, alert.Status)
	return nil
}

func printAlert(alert models.AlertRecord) {
	output.Info("Alert ID: %s", alert.ID)
	output.Info("Type: %s", alert.Type)
	output.Info("Severity: %s", output.Severity(string(alert.Severity)))
	output.Info("Status: %s", alert.Status)
	output.Info("Created: %s", alert.CreatedAt.Local().Format(timeFormat))
	if alert.SourceIP != "" {
		output.Info("Source IP: %s", alert.SourceIP)
	}
	output.Info("Description: %s", alert.Description)

	if len(alert.RelatedLogs) == 0 {
		return
	}
	output.Info("\nRelated logs (%d):", len(alert.RelatedLogs))
	table := output.NewTable([]string{"Time", "Level", "Source", "IP", "Message"})
	for _, l := range alert.RelatedLogs {
		table.AddRow([]string{
			l.Timestamp.Local().Format(timeFormat),
			output.Severity(string(l.Level)),
			string(l.Source),
			l.IP,
			l.Message,
		})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsGetCmd)
	alertsCmd.AddCommand(alertsAckCmd)
	alertsCmd.AddCommand(alertsResolveCmd)
	alertsCmd.AddCommand(alertsStatsCmd)

	alertsListCmd.Flags().String("status", "", "filter by status (active, acknowledged, resolved)")
	alertsListCmd.Flags().String("severity", "", "filter by severity (critical, high, medium, low)")
}
