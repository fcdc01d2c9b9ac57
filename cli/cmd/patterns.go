package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Attack patterns",
	Long:  "List attack patterns and preview the log bursts they produce",
}

var patternsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List attack patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		patterns, err := apiClient().Patterns(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list patterns: %w", err)
		}

		if ok, err := output.Structured(format(), patterns); ok {
			return err
		}

		table := output.NewTable([]string{"Name", "Default Count", "Description"})
		for _, p := range patterns {
			table.AddRow([]string{p.Name, strconv.Itoa(p.DefaultCount), p.Description})
		}
		table.Render()
		return nil
	},
}

var patternsGenerateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Preview a pattern burst",
	Long: `Generate the records a pattern would produce for an address, ending now.
The burst is returned for inspection and is not added to the log buffer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, _ := cmd.Flags().GetString("address")
		count, _ := cmd.Flags().GetInt("count")

		logs, err := apiClient().GeneratePattern(cmd.Context(), args[0], address, count)
		if err != nil {
			return fmt.Errorf("failed to generate pattern: %w", err)
		}

		if ok, err := output.Structured(format(), logs); ok {
			return err
		}

		table := output.NewTable([]string{"Time", "Level", "Source", "IP", "Message"})
		for _, l := range logs {
			table.AddRow([]string{
				l.Timestamp.Local().Format("15:04:05.000"),
				output.Severity(string(l.Level)),
				string(l.Source),
				l.IP,
				l.Message,
			})
		}
		table.Render()
		output.Info("\n%d records", len(logs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.AddCommand(patternsListCmd)
	patternsCmd.AddCommand(patternsGenerateCmd)

	patternsGenerateCmd.Flags().String("address", "", "source address (default: first suspicious address)")
	patternsGenerateCmd.Flags().Int("count", 0, "number of records (default: the pattern's default)")
}
