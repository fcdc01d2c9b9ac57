package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard stats and top addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")
		c := apiClient()

		stats, err := c.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}
		addresses, err := c.TopAddresses(cmd.Context(), top)
		if err != nil {
			return fmt.Errorf("failed to get top addresses: %w", err)
		}

		if ok, err := output.Structured(format(), map[string]any{
			"stats":         stats,
			"top_addresses": addresses,
		}); ok {
			return err
		}

		printDashboard(stats)
		output.Info("")
		printAddresses(addresses)
		return nil
	},
}

func printDashboard(stats models.DashboardStats) {
	table := output.NewTable([]string{"Total Logs", "Logs/Min", "Active", "Acknowledged", "Resolved", "Critical"})
	table.AddRow([]string{
		strconv.Itoa(stats.TotalLogs),
		strconv.Itoa(stats.LogsPerMinute),
		strconv.Itoa(stats.ActiveAlerts),
		strconv.Itoa(stats.AcknowledgedAlerts),
		strconv.Itoa(stats.ResolvedAlerts),
		strconv.Itoa(stats.CriticalAlerts),
	})
	table.Render()
}

func printAddresses(addresses []models.AddressStat) {
	if len(addresses) == 0 {
		output.Info("No addresses seen yet")
		return
	}
	table := output.NewTable([]string{"IP", "Requests", "Threat", "Last Seen"})
	for _, a := range addresses {
		table.AddRow([]string{
			a.IP,
			strconv.Itoa(a.RequestCount),
			threat(a.ThreatScore),
			a.LastSeen.Local().Format(timeFormat),
		})
	}
	table.Render()
}

// threat renders a score with the severity band it falls in.
func threat(score int) string {
	s := strconv.Itoa(score)
	switch {
	case score >= 80:
		return output.Severity("critical") + " " + s
	case score >= 60:
		return output.Severity("high") + " " + s
	default:
		return s
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Int("top", 0, "number of top addresses (default: service setting)")
}
