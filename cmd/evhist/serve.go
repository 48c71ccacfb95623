package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evhist/evhist"
)

// runServe starts the daemon: config, logger, kind registry, recorder,
// sinks, admin API and optional metrics listener, then blocks until a
// termination signal arrives.
func runServe(flags *ServeFlags, args []string) error {
	configPath := flags.ConfigPath
	if len(args) > 0 {
		configPath = args[0]
	}
	if configPath == "" {
		return fmt.Errorf("config file required for serve command. Use --config=config.toml or provide as argument")
	}

	cfg, err := evhist.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := evhist.NewLogger(cfg.Log)

	reg, err := cfg.BuildRegistry()
	if err != nil {
		return fmt.Errorf("error building kind registry: %w", err)
	}

	rec := evhist.NewWithOptions(evhist.Options{MaxRecords: cfg.History.MaxRecords, Logger: logger})

	if err := evhist.RegisterMetricsDefault(); err != nil {
		logger.Warn("failed to register metrics", "error", err)
	}

	var closers []io.Closer
	for _, sc := range cfg.Sinks {
		s, err := evhist.NewSinkFromDSN(sc.DSN)
		if err != nil {
			return fmt.Errorf("error creating sink %q: %w", sc.DSN, err)
		}
		rec.AddSink(s, logger)
		if c, ok := s.(io.Closer); ok {
			closers = append(closers, c)
		}
		logger.Info("history sink attached", "dsn", sc.DSN)
	}

	// sinks activate recording as listeners; the config flag on top of
	// that forces the initial state explicitly
	if cfg.History.Active {
		rec.SetActive(true)
	}

	srv, err := evhist.NewHTTPServer(cfg.Server.Listen, cfg.Server.BasePath, rec, reg)
	if err != nil {
		return fmt.Errorf("error starting API server: %w", err)
	}
	logger.Info("evhist daemon started",
		"listen", cfg.Server.Listen, "base_path", cfg.Server.BasePath,
		"kinds", len(cfg.Kinds), "sinks", len(cfg.Sinks),
		"max_records", cfg.History.MaxRecords)

	if cfg.Metrics.Listen != "" {
		go func() {
			if err := evhist.ServeMetrics(cfg.Metrics.Listen); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		logger.Info("metrics listener started", "listen", cfg.Metrics.Listen)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("API server shutdown", "error", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("sink close", "error", err)
		}
	}
	return nil
}
