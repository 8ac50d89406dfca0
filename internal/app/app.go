// Copyright 2026 © The Maestro Authors
// SPDX-License-Identifier: Apache-2.0

// Package app wires configuration, logging, telemetry and the orchestrator
// for the demo entry points.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jllopis/maestro/pkg/config"
	"github.com/jllopis/maestro/pkg/core"
	"github.com/jllopis/maestro/pkg/errors"
	"github.com/jllopis/maestro/pkg/orchestrator"
	"github.com/jllopis/maestro/pkg/roles"
	"github.com/jllopis/maestro/pkg/telemetry"
)

// Version is reported as the telemetry service version.
var Version = "dev"

// Driver runs one demo against a freshly constructed orchestrator.
type Driver func(ctx context.Context, w io.Writer, opts ...orchestrator.Option) error

// App holds the resolved configuration and logger.
type App struct {
	name   string
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

// New loads configuration from args and configures logging on logOut.
func New(name string, args []string, out, logOut io.Writer) (*App, error) {
	cfg, err := config.LoadWithCLI(args)
	if err != nil {
		return nil, err
	}
	logger := telemetry.ConfigureSlog(logOut, cfg.Log.Level, cfg.Log.Format)
	return &App{name: name, cfg: cfg, logger: logger, out: out}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Run initializes telemetry, runs the driver and flushes telemetry. Failures
// are logged with their structured error before being returned.
func (a *App) Run(ctx context.Context, driver Driver) error {
	ctx, runID := core.EnsureRunID(ctx)
	logger := a.logger.With(slog.String("run_id", runID))
	if err := a.run(ctx, logger, driver); err != nil {
		logger.ErrorContext(ctx, "demo.failed",
			slog.String("demo", a.name),
			slog.Any("error", errors.As(err)),
		)
		return err
	}
	return nil
}

func (a *App) run(ctx context.Context, logger *slog.Logger, driver Driver) error {
	shutdown, err := telemetry.InitWithConfig(a.name, Version, telemetry.Config{
		Exporter:     a.cfg.Telemetry.Exporter,
		OTLPEndpoint: a.cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: a.cfg.Telemetry.OTLPInsecure,
		Output:       os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("telemetry.shutdown", slog.String("error", err.Error()))
		}
	}()

	opts, err := a.orchestratorOptions()
	if err != nil {
		return err
	}
	opts = append(opts, orchestrator.WithLogger(logger))

	logger.DebugContext(ctx, "demo.start",
		slog.String("demo", a.name),
		slog.String("default_role", a.cfg.Orchestrator.DefaultRole),
	)
	if err := driver(ctx, a.out, opts...); err != nil {
		return err
	}
	logger.DebugContext(ctx, "demo.complete", slog.String("demo", a.name))
	return nil
}

func (a *App) orchestratorOptions() ([]orchestrator.Option, error) {
	opts := []orchestrator.Option{
		orchestrator.WithDefaultRole(core.RoleKey(a.cfg.Orchestrator.DefaultRole)),
	}
	if a.cfg.Roles.File != "" {
		catalog, err := roles.LoadFile(a.cfg.Roles.File)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithCatalog(catalog))
	}
	metrics, err := telemetry.NewOrchestratorMetrics(nil)
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}
	return append(opts, orchestrator.WithMetrics(metrics)), nil
}
