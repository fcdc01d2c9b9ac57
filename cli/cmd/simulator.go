package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
)

var simulatorCmd = &cobra.Command{
	Use:     "simulator",
	Aliases: []string{"sim"},
	Short:   "Control the service's simulator",
}

var simulatorStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the schedules are running",
	RunE: func(cmd *cobra.Command, args []string) error {
		active, err := apiClient().SimulatorActive(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get simulator state: %w", err)
		}
		return printState(active)
	},
}

var simulatorStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the log and alert schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setState(cmd, true)
	},
}

var simulatorStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the log and alert schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setState(cmd, false)
	},
}

var simulatorTickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Produce one log record now",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := apiClient().Tick(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to tick: %w", err)
		}
		if ok, err := output.Structured(format(), rec); ok {
			return err
		}
		output.Success("%s [%s] %s %s: %s", rec.ID, rec.Level, rec.Source, rec.IP, rec.Message)
		return nil
	},
}

var simulatorEmitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Raise one alert now",
	RunE: func(cmd *cobra.Command, args []string) error {
		alert, err := apiClient().EmitAlert(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to emit alert: %w", err)
		}
		if ok, err := output.Structured(format(), alert); ok {
			return err
		}
		output.Success("%s %s (%s) from %s", alert.ID, alert.Type, alert.Severity, alert.SourceIP)
		return nil
	},
}

func setState(cmd *cobra.Command, active bool) error {
	got, err := apiClient().SetSimulatorActive(cmd.Context(), active)
	if err != nil {
		return fmt.Errorf("failed to change simulator state: %w", err)
	}
	return printState(got)
}

func printState(active bool) error {
	if ok, err := output.Structured(format(), map[string]bool{"enabled": active}); ok {
		return err
	}
	if active {
		output.Success("Simulator running")
	} else {
		output.Info("Simulator stopped")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(simulatorCmd)
	simulatorCmd.AddCommand(simulatorStatusCmd)
	simulatorCmd.AddCommand(simulatorStartCmd)
	simulatorCmd.AddCommand(simulatorStopCmd)
	simulatorCmd.AddCommand(simulatorTickCmd)
	simulatorCmd.AddCommand(simulatorEmitCmd)
}
