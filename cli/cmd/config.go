package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/minisentinel/cli/pkg/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sentinelctl settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := map[string]string{
			"server_url": cfg.ServerURL,
			"output":     cfg.Output,
			"nats_url":   cfg.NATSURL,
		}
		if ok, err := output.Structured(format(), settings); ok {
			return err
		}
		output.Info("Config file: %s", cfg.Path())
		table := output.NewTable([]string{"Key", "Value"})
		for _, key := range []string{"server_url", "output", "nats_url"} {
			table.AddRow([]string{key, settings[key]})
		}
		table.Render()
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set server_url, output or nats_url",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		switch key {
		case "server_url":
			cfg.ServerURL = value
		case "output":
			if !output.ValidFormat(value) {
				return fmt.Errorf("unknown output format %q (use table, json or yaml)", value)
			}
			cfg.Output = value
		case "nats_url":
			cfg.NATSURL = value
		default:
			return fmt.Errorf("unknown key %q (use server_url, output or nats_url)", key)
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		output.Success("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
