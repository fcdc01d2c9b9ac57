package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
	"github.com/telhawk-systems/minisentinel/common/logging"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/simulator"
)

// simulationReport is the structured result of simulate.
type simulationReport struct {
	Seed         int64                 `json:"seed" yaml:"seed"`
	Ticks        int                   `json:"ticks" yaml:"ticks"`
	AlertsRaised int                   `json:"alerts_raised" yaml:"alerts_raised"`
	Stats        models.DashboardStats `json:"stats" yaml:"stats"`
	AlertStats   models.AlertStats     `json:"alert_stats" yaml:"alert_stats"`
	TopAddresses []models.AddressStat  `json:"top_addresses" yaml:"top_addresses"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulator in-process",
	Long: `Seed a simulator in this process, drive it for a number of ticks and alert
emissions, then print the dashboard stats and the busiest addresses.

The same --seed always produces the same logs, alerts and threat scores.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ticks, _ := cmd.Flags().GetInt("ticks")
		alerts, _ := cmd.Flags().GetInt("alerts")
		seed, _ := cmd.Flags().GetInt64("seed")
		logCount, _ := cmd.Flags().GetInt("logs")
		hours, _ := cmd.Flags().GetInt("hours")
		noSamples, _ := cmd.Flags().GetBool("no-sample-alerts")
		capacity, _ := cmd.Flags().GetInt("capacity")
		top, _ := cmd.Flags().GetInt("top")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if ticks < 0 || alerts < 0 {
			return fmt.Errorf("--ticks and --alerts must be >= 0")
		}

		report, err := runSimulation(simulationOptions{
			seed:        seed,
			ticks:       ticks,
			alerts:      alerts,
			logCount:    logCount,
			hoursBack:   hours,
			sampleAlert: !noSamples,
			capacity:    capacity,
			top:         top,
			logOutput:   verboseWriter(cmd, verbose),
		})
		if err != nil {
			return err
		}

		if ok, err := output.Structured(format(), report); ok {
			return err
		}

		output.Success("Simulated %d ticks and %d alerts (seed %d)", report.Ticks, report.AlertsRaised, report.Seed)
		printDashboard(report.Stats)
		output.Info("")
		printAddresses(report.TopAddresses)
		return nil
	},
}

type simulationOptions struct {
	seed        int64
	ticks       int
	alerts      int
	logCount    int
	hoursBack   int
	sampleAlert bool
	capacity    int
	top         int
	logOutput   io.Writer
}

func runSimulation(opts simulationOptions) (*simulationReport, error) {
	simCfg := simulator.DefaultConfig()
	simCfg.Seed = opts.seed
	simCfg.Capacity = opts.capacity
	simCfg.TopLimit = opts.top

	logger := logging.NewWithWriter(opts.logOutput, slog.LevelDebug, "text")
	sim, err := simulator.New(simCfg, simulator.WithLogger(logger.Logger))
	if err != nil {
		return nil, err
	}
	defer sim.Dispose()

	if err := sim.Initialize(opts.logCount, opts.hoursBack, opts.sampleAlert); err != nil {
		return nil, err
	}
	for i := 0; i < opts.ticks; i++ {
		sim.Tick()
	}
	for i := 0; i < opts.alerts; i++ {
		sim.EmitAlert()
	}

	return &simulationReport{
		Seed:         opts.seed,
		Ticks:        opts.ticks,
		AlertsRaised: opts.alerts,
		Stats:        sim.Stats(),
		AlertStats:   sim.AlertStats(),
		TopAddresses: sim.TopAddresses(),
	}, nil
}

func verboseWriter(cmd *cobra.Command, verbose bool) io.Writer {
	if verbose {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Int("ticks", 20, "number of log ticks to run after seeding")
	simulateCmd.Flags().Int("alerts", 3, "number of alerts to emit after seeding")
	simulateCmd.Flags().Int64("seed", 1, "random seed (0 picks a random one)")
	simulateCmd.Flags().Int("logs", 100, "number of historical logs to seed")
	simulateCmd.Flags().Int("hours", 24, "spread seeded logs over this many hours")
	simulateCmd.Flags().Bool("no-sample-alerts", false, "do not seed the demonstration alerts")
	simulateCmd.Flags().Int("capacity", 1000, "log buffer capacity")
	simulateCmd.Flags().Int("top", 10, "number of top addresses to report")
	simulateCmd.Flags().BoolP("verbose", "v", false, "write simulator logs to stderr")
}
