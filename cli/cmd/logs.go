package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/internal/client"
	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Browse the log buffer",
}

var logsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List logs, newest first",
	Long: `List logs from the service's buffer with optional filters.

--search matches message and source case-insensitively and IP as a substring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := client.LogQuery{}
		q.Search, _ = cmd.Flags().GetString("search")
		q.Level, _ = cmd.Flags().GetString("level")
		q.Source, _ = cmd.Flags().GetString("source")
		q.IP, _ = cmd.Flags().GetString("ip")
		q.Page, _ = cmd.Flags().GetInt("page")
		q.Limit, _ = cmd.Flags().GetInt("limit")
		if since, _ := cmd.Flags().GetDuration("since"); since > 0 {
			q.From = time.Now().Add(-since)
		}

		page, err := apiClient().Logs(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("failed to list logs: %w", err)
		}

		if ok, err := output.Structured(format(), page.Logs); ok {
			return err
		}

		if len(page.Logs) == 0 {
			output.Info("No logs found")
			return nil
		}

		table := output.NewTable([]string{"Time", "Level", "Source", "IP", "Message"})
		for _, l := range page.Logs {
			table.AddRow([]string{
				l.Timestamp.Local().Format(timeFormat),
				output.Severity(string(l.Level)),
				string(l.Source),
				l.IP,
				l.Message,
			})
		}
		table.Render()

		output.Info("\nPage %d of %d (%d logs)", page.Page, page.TotalPages, page.Total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsListCmd)

	logsListCmd.Flags().String("search", "", "search message, source and IP")
	logsListCmd.Flags().String("level", "", "filter by level (error, warn, info, debug)")
	logsListCmd.Flags().String("source", "", "filter by source (auth, firewall, app, database, network, system)")
	logsListCmd.Flags().String("ip", "", "filter by IP substring")
	logsListCmd.Flags().Duration("since", 0, "only logs newer than this, e.g. 30m")
	logsListCmd.Flags().Int("page", 1, "page number")
	logsListCmd.Flags().Int("limit", 50, "logs per page (max 200)")
}
