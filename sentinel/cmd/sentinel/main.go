package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/telhawk-systems/minisentinel/common/config"
	"github.com/telhawk-systems/minisentinel/common/logging"
	"github.com/telhawk-systems/minisentinel/common/messaging"
	"github.com/telhawk-systems/minisentinel/common/middleware"
	"github.com/telhawk-systems/minisentinel/sentinel/internal/handlers"
	"github.com/telhawk-systems/minisentinel/sentinel/internal/metrics"
	"github.com/telhawk-systems/minisentinel/sentinel/internal/ratelimit"
	"github.com/telhawk-systems/minisentinel/sentinel/internal/server"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/simulator"

	natsclient "github.com/telhawk-systems/minisentinel/common/messaging/nats"
	natspub "github.com/telhawk-systems/minisentinel/sentinel/internal/nats"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("sentinel"))
	logging.SetDefault(logger)

	slog.Info("Starting Sentinel service",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	// Sinks: metrics always, NATS when enabled
	opts := []simulator.Option{
		simulator.WithLogger(logger.Logger),
		simulator.WithSink(metrics.Recorder{}),
	}

	var natsClient *natsclient.Client
	if cfg.NATS.Enabled {
		natsClient, err = natsclient.NewClient(natsclient.Config{
			URL:           cfg.NATS.URL,
			Name:          "sentinel",
			MaxReconnects: cfg.NATS.MaxReconnects,
			ReconnectWait: cfg.NATS.ReconnectWait,
			Timeout:       natsclient.DefaultConfig().Timeout,
			Logger:        logger.Logger,
		})
		if err != nil {
			slog.Warn("Failed to connect to NATS, events will not be published", logging.Error(err))
		} else {
			opts = append(opts, simulator.WithSink(natspub.NewPublisher(natsClient, logger.Logger)))
			slog.Info("Publishing simulator events", slog.String("nats_url", cfg.NATS.URL))
			defer func() {
				if err := natsClient.Drain(); err != nil {
					slog.Warn("NATS drain failed", logging.Error(err))
				}
			}()
		}
	} else {
		slog.Info("NATS disabled - simulator events will not be published")
	}

	// Build and seed the simulator
	sim, err := simulator.New(simulatorConfig(cfg.Simulator), opts...)
	if err != nil {
		log.Fatalf("Invalid simulator configuration: %v", err)
	}
	if err := sim.Initialize(cfg.Simulator.InitialLogCount, cfg.Simulator.SeedHoursBack, cfg.Simulator.SeedAlerts); err != nil {
		log.Fatalf("Failed to seed simulator: %v", err)
	}

	// Initialize rate limiter
	rateLimiter := newRateLimiter(cfg)
	defer rateLimiter.Close()

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()

	handler := handlers.NewHandler(runCtx, sim).
		WithRateLimiter(rateLimiter).
		WithLogger(logger)
	if natsClient != nil {
		handler.WithReadinessCheck("nats", func(context.Context) error {
			return messaging.CheckHealth(natsClient)
		})
	}
	if p, ok := rateLimiter.(interface{ Ping(context.Context) error }); ok {
		handler.WithReadinessCheck("redis", p.Ping)
	}
	router := server.NewRouter(handler, logger, middleware.DefaultCORSConfig())

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		slog.Info("Sentinel service listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	if cfg.Simulator.Enabled {
		if err := sim.Activate(runCtx); err != nil {
			log.Fatalf("Failed to start simulator: %v", err)
		}
	} else {
		slog.Info("Simulator schedules disabled; use PUT /api/v1/simulator/state to start them")
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	sim.Dispose()
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", logging.Error(err))
	}

	slog.Info("Server stopped")
}

// simulatorConfig maps the service configuration onto the simulator's.
func simulatorConfig(c config.SimulatorConfig) simulator.Config {
	return simulator.Config{
		Capacity:           c.BufferCapacity,
		TopLimit:           c.TopLimit,
		LogsPerSecond:      c.LogsPerSecond,
		Seed:               c.RandomSeed,
		JitterThreatScores: c.JitterThreatScores,
		LogStartDelay:      simulator.Range(c.LogStartDelay),
		LogInterval:        simulator.Range(c.LogInterval),
		AlertStartDelay:    simulator.Range(c.AlertStartDelay),
		AlertInterval:      simulator.Range(c.AlertInterval),
	}
}

// newRateLimiter returns a redis limiter when configured and reachable, and a
// NoOp limiter otherwise.
func newRateLimiter(cfg *config.Config) ratelimit.RateLimiter {
	if !cfg.RateLimit.Enabled || !cfg.Redis.Enabled {
		if !cfg.Redis.Enabled {
			slog.Info("Redis disabled - rate limiting not available")
		}
		return ratelimit.NoOpRateLimiter{}
	}

	limiter, err := ratelimit.NewRedisRateLimiter(cfg.Redis.URL, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	if err != nil {
		slog.Warn("Failed to initialize Redis rate limiter, continuing without rate limiting", logging.Error(err))
		return ratelimit.NoOpRateLimiter{}
	}
	slog.Info("Rate limiting enabled",
		slog.Int("requests", cfg.RateLimit.Requests),
		slog.Duration("window", cfg.RateLimit.Window),
	)
	return limiter
}
