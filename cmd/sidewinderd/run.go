package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"sidewinderd/internal/config"
	"sidewinderd/internal/device"
	"sidewinderd/internal/lifecycle"
	"sidewinderd/internal/logging"
	"sidewinderd/internal/privileges"
)

func runDaemon(ctx context.Context, daemonize, verbose bool, configPath string) error {
	logger, err := logging.New(logging.Options{Level: "info", Format: "console"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))

	if daemonize {
		logger.Warn("--daemon accepted but inert, staying in the foreground")
	}
	if verbose {
		logger.Warn("--verbose accepted but inert")
	}

	if configPath == "" {
		configPath = config.DefaultPath
	}

	d := lifecycle.New(configPath, logger, newCaptureSource)
	return d.Run(ctx)
}

func newCaptureSource(cfg *config.Config, id privileges.Identity, logger *slog.Logger) (lifecycle.Source, error) {
	return device.NewMonitor(cfg, id, logger)
}
