package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/internal/client"
	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
	"github.com/telhawk-systems/minisentinel/common/config"
)

const timeFormat = "2006-01-02 15:04:05"

var (
	cfg          *config.CLIConfig
	serverURL    string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "sentinelctl",
	Short: "MiniSentinel CLI",
	Long: `sentinelctl is the command-line interface for the MiniSentinel event simulator.

Run the simulator in-process, browse logs and alerts on a running service,
triage alerts and inspect the detection rule catalog and attack patterns.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		output.Out = cmd.OutOrStdout()
		output.Err = cmd.ErrOrStderr()
		if !output.ValidFormat(format()) {
			return fmt.Errorf("unknown output format %q (use table, json or yaml)", format())
		}
		return nil
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		output.Error("%v", err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "sentinel service URL (default from config, http://localhost:8090)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml")
}

func initConfig() {
	var err error
	cfg, err = config.LoadCLI()
	if err != nil {
		output.Warn("Could not load config: %v", err)
		cfg = config.DefaultCLI()
	}
}

func format() string {
	if outputFormat != "" {
		return outputFormat
	}
	if cfg != nil && cfg.Output != "" {
		return cfg.Output
	}
	return output.FormatTable
}

func apiClient() *client.Client {
	url := serverURL
	if url == "" && cfg != nil {
		url = cfg.ServerURL
	}
	if url == "" {
		url = config.DefaultCLI().ServerURL
	}
	return client.New(url)
}
