package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/config"
	"github.com/phrazzld/task-tracker/internal/counter"
	"github.com/phrazzld/task-tracker/internal/platform/jsonfile"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/platform/memory"
	"github.com/phrazzld/task-tracker/internal/platform/otel"
	"github.com/phrazzld/task-tracker/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	loggers  *logger.Loggers
	requests *counter.RequestCounter

	taskStore   *memory.TaskStore
	snapshots   *jsonfile.SnapshotStore
	taskService service.TaskService

	shutdownTelemetry otel.ShutdownFunc
}

// newApplication creates a new application instance and restores the task
// snapshot. A snapshot that cannot be read is returned as a fatal error.
func newApplication(
	cfg *config.Config,
	loggers *logger.Loggers,
	requests *counter.RequestCounter,
	shutdownTelemetry otel.ShutdownFunc,
) (*application, error) {
	app := &application{
		config:            cfg,
		loggers:           loggers,
		requests:          requests,
		shutdownTelemetry: shutdownTelemetry,
	}

	app.taskStore = memory.NewTaskStore(loggers.Task)
	app.snapshots = jsonfile.NewSnapshotStore(cfg.Storage.Path, requests, loggers.Task)

	if _, err := app.snapshots.Load(app.taskStore); err != nil {
		return nil, fmt.Errorf("failed to load task snapshot: %w", err)
	}

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, loggers.Task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	loggers.Request.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives, then
// persists the snapshot and releases resources. Failing to save is fatal.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	serveErr := app.startHTTPServer(ctx, router)
	if serveErr != nil {
		app.loggers.Request.Error("server error", slog.String("error", serveErr.Error()))
	}

	return errors.Join(serveErr, app.cleanup())
}

// persist writes the current tasks, id counter and request counter.
func (app *application) persist() error {
	if err := app.snapshots.SaveFrom(app.taskStore); err != nil {
		return fmt.Errorf("failed to save task snapshot: %w", err)
	}
	return nil
}

// cleanup saves the snapshot, flushes telemetry and closes the log files.
// Every step runs even when an earlier one fails.
func (app *application) cleanup() error {
	var errs []error

	if err := app.persist(); err != nil {
		app.loggers.Task.Error("snapshot save failed", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if app.shutdownTelemetry != nil {
		if err := app.shutdownTelemetry(context.Background()); err != nil {
			app.loggers.Request.Error("telemetry shutdown failed", slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("failed to shut down telemetry: %w", err))
		}
	}

	app.loggers.Request.Info("application shutdown completed")

	if err := app.loggers.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close log files: %w", err))
	}

	return errors.Join(errs...)
}
