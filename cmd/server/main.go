// Package main implements the entry point for the task tracker API server,
// which keeps tasks in memory and snapshots them to a JSON file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/task-tracker/internal/config"
	"github.com/phrazzld/task-tracker/internal/counter"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/platform/otel"
)

// main is the entry point for the task tracker server.
// Any startup failure and any failure to persist state on shutdown exits
// with status 1.
func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("task tracker stopped with error", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run initializes the application, serves until a shutdown signal arrives,
// and persists the task snapshot.
func run(ctx context.Context) error {
	app, err := initializeApp(ctx)
	if err != nil {
		return err
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up application components.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	requests := &counter.RequestCounter{}

	loggers, err := logger.Setup(cfg.Log, requests)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	loggers.Request.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_dir", cfg.Log.Dir),
		slog.String("request_level", cfg.Log.RequestLevel),
		slog.String("task_level", cfg.Log.TaskLevel),
		slog.String("storage_path", cfg.Storage.Path),
		slog.Bool("telemetry_enabled", cfg.Telemetry.Enabled))

	shutdownTelemetry, err := otel.Init(ctx, cfg.Telemetry, os.Stdout)
	if err != nil {
		_ = loggers.Close()
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}

	app, err := newApplication(cfg, loggers, requests, shutdownTelemetry)
	if err != nil {
		_ = shutdownTelemetry(ctx)
		_ = loggers.Close()
		return nil, err
	}

	return app, nil
}
