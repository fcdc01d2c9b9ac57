// Package config provides configuration loading for the MiniSentinel service and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the service configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DelayRange is a [min, max) delay window.
type DelayRange struct {
	Min time.Duration `mapstructure:"min"`
	Max time.Duration `mapstructure:"max"`
}

// SimulatorConfig controls seeding, buffer sizes and the production schedule.
type SimulatorConfig struct {
	Enabled            bool       `mapstructure:"enabled"`
	InitialLogCount    int        `mapstructure:"initial_log_count"`
	SeedHoursBack      int        `mapstructure:"seed_hours_back"`
	SeedAlerts         bool       `mapstructure:"seed_alerts"`
	LogsPerSecond      float64    `mapstructure:"logs_per_second"`
	BufferCapacity     int        `mapstructure:"buffer_capacity"`
	TopLimit           int        `mapstructure:"top_limit"`
	RandomSeed         int64      `mapstructure:"random_seed"`
	JitterThreatScores bool       `mapstructure:"jitter_threat_scores"`
	LogStartDelay      DelayRange `mapstructure:"log_start_delay"`
	LogInterval        DelayRange `mapstructure:"log_interval"`
	AlertStartDelay    DelayRange `mapstructure:"alert_start_delay"`
	AlertInterval      DelayRange `mapstructure:"alert_interval"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// RateLimitConfig limits mutating API calls per client address.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// NATSConfig holds NATS message broker configuration
type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	Enabled       bool          `mapstructure:"enabled"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from configPath, or $SENTINEL_CONFIG_DIR/config.yaml
// when configPath is empty, then applies SENTINEL_* environment overrides.
// A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := configPath != ""
	if !explicit {
		configDir := os.Getenv("SENTINEL_CONFIG_DIR")
		if configDir == "" {
			configDir = "/etc/sentinel"
		}
		configPath = filepath.Join(configDir, "config.yaml")
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SENTINEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("simulator.enabled", true)
	v.SetDefault("simulator.initial_log_count", 100)
	v.SetDefault("simulator.seed_hours_back", 24)
	v.SetDefault("simulator.seed_alerts", true)
	v.SetDefault("simulator.logs_per_second", 2)
	v.SetDefault("simulator.buffer_capacity", 1000)
	v.SetDefault("simulator.top_limit", 10)
	v.SetDefault("simulator.random_seed", 0)
	v.SetDefault("simulator.jitter_threat_scores", false)
	v.SetDefault("simulator.log_start_delay.min", "3s")
	v.SetDefault("simulator.log_start_delay.max", "5s")
	v.SetDefault("simulator.log_interval.min", "10s")
	v.SetDefault("simulator.log_interval.max", "20s")
	v.SetDefault("simulator.alert_start_delay.min", "5s")
	v.SetDefault("simulator.alert_start_delay.max", "10s")
	v.SetDefault("simulator.alert_interval.min", "15s")
	v.SetDefault("simulator.alert_interval.max", "30s")

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.enabled", false)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.max_reconnects", -1)
	v.SetDefault("nats.reconnect_wait", "2s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate rejects negative counts, inverted delay ranges and
// rate limiting without redis.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}

	s := c.Simulator
	for key, n := range map[string]int{
		"simulator.initial_log_count": s.InitialLogCount,
		"simulator.seed_hours_back":   s.SeedHoursBack,
		"simulator.buffer_capacity":   s.BufferCapacity,
		"simulator.top_limit":         s.TopLimit,
	} {
		if n < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidConfig, key, n)
		}
	}
	if s.LogsPerSecond < 0 {
		return fmt.Errorf("%w: simulator.logs_per_second must be >= 0", ErrInvalidConfig)
	}
	for key, r := range map[string]DelayRange{
		"simulator.log_start_delay":   s.LogStartDelay,
		"simulator.log_interval":      s.LogInterval,
		"simulator.alert_start_delay": s.AlertStartDelay,
		"simulator.alert_interval":    s.AlertInterval,
	} {
		if r.Min < 0 || r.Max < r.Min {
			return fmt.Errorf("%w: %s [%s, %s) is not a valid range", ErrInvalidConfig, key, r.Min, r.Max)
		}
	}

	if c.RateLimit.Enabled {
		if !c.Redis.Enabled {
			return fmt.Errorf("%w: rate_limit.enabled requires redis.enabled", ErrInvalidConfig)
		}
		if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
			return fmt.Errorf("%w: rate_limit needs positive requests and window", ErrInvalidConfig)
		}
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("%w: logging.format must be json or text, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
