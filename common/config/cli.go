package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// CLIConfig holds sentinelctl settings.
type CLIConfig struct {
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	Output    string `yaml:"output" mapstructure:"output"`
	NATSURL   string `yaml:"nats_url" mapstructure:"nats_url"`
	path      string
}

// DefaultCLI returns a CLIConfig with default values
func DefaultCLI() *CLIConfig {
	return &CLIConfig{
		ServerURL: "http://localhost:8090",
		Output:    "table",
		NATSURL:   "nats://localhost:4222",
	}
}

// LoadCLI loads configuration for sentinelctl.
// Uses $HOME/.sentinel as the config directory if SENTINEL_CONFIG_DIR is not set.
func LoadCLI() (*CLIConfig, error) {
	v := viper.New()
	def := DefaultCLI()
	v.SetDefault("server_url", def.ServerURL)
	v.SetDefault("output", def.Output)
	v.SetDefault("nats_url", def.NATSURL)

	configDir := os.Getenv("SENTINEL_CONFIG_DIR")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		configDir = filepath.Join(home, ".sentinel")
	}

	configPath := filepath.Join(configDir, "cli.yaml")
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SENTINEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// file may not exist yet
	_ = v.ReadInConfig()

	cfg := &CLIConfig{path: configPath}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Path returns the file Save writes to.
func (c *CLIConfig) Path() string {
	return c.path
}

// Save writes the CLI config to disk
func (c *CLIConfig) Save() error {
	if c.path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(home, ".sentinel", "cli.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0600)
}
