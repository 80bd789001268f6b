package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gowombat/doodle-api/internal/config"
	"github.com/gowombat/doodle-api/internal/generation"
	"github.com/gowombat/doodle-api/internal/platform/openrouter"
	"github.com/gowombat/doodle-api/internal/platform/postgres"
	"github.com/gowombat/doodle-api/internal/ratelimit"
	"github.com/gowombat/doodle-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Optional infrastructure; nil when not configured
	db    *sql.DB
	redis *redis.Client

	// Stores (using interfaces for proper abstraction)
	historyStore store.GenerationStore

	// Services
	generator generation.Generator
	limiter   *ratelimit.Limiter
}

// newApplication creates a new application instance with all dependencies
// initialized. Database and redis are optional; when absent the service runs
// with history recording disabled and in-memory rate limiting.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if cfg.Database.URL != "" {
		db, err := setupDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to set up database: %w", err)
		}
		app.db = db
		app.historyStore = postgres.NewGenerationStore(db, logger)
		logger.Info("Generation history store initialized")
	} else {
		logger.Info("No database configured, generation history disabled")
	}

	limitStore, err := app.setupRateLimitStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to set up rate limit store: %w", err)
	}

	app.limiter, err = ratelimit.NewLimiter(
		logger,
		limitStore,
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.PeriodSeconds)*time.Second,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	app.generator, err = openrouter.NewGenerator(
		logger.With("component", "doodle_generator"),
		cfg.OpenRouter,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize doodle generator: %w", err)
	}
	logger.Info("Doodle generator initialized", "model", cfg.OpenRouter.Model)

	return app, nil
}

// setupRateLimitStore selects the window store: redis when configured so
// multiple instances share limit state, the bounded in-memory store
// otherwise.
func (app *application) setupRateLimitStore(ctx context.Context) (ratelimit.Store, error) {
	if app.config.RateLimit.RedisURL == "" {
		app.logger.Info("Using in-memory rate limit store",
			"max_clients", app.config.RateLimit.MaxClients)
		return ratelimit.NewMemoryStore(app.config.RateLimit.MaxClients), nil
	}

	opts, err := redis.ParseURL(app.config.RateLimit.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	app.redis = client
	app.logger.Info("Using redis rate limit store")
	return ratelimit.NewRedisStore(client), nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Failed to close redis client", "error", err)
		}
	}
}
