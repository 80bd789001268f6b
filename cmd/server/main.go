// Package main implements the entry point for the GoWombat doodle API
// server, which turns occasion descriptions into doodle images through an
// upstream image-generation model.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/gowombat/doodle-api/internal/config"
	"github.com/gowombat/doodle-api/internal/platform/logger"
)

// main is the entry point for the doodle-api server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires the application together and serves HTTP
// until a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.OpenRouter.Model,
		"rate_limit", cfg.RateLimit.Requests,
		"rate_period_seconds", cfg.RateLimit.PeriodSeconds,
		"database_configured", cfg.Database.URL != "",
		"redis_configured", cfg.RateLimit.RedisURL != "")

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
