package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/gowombat/doodle-api/internal/api"
	apiMiddleware "github.com/gowombat/doodle-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   app.config.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	// Create API handlers using the application's services
	doodleHandler := api.NewDoodleHandler(
		app.generator,
		app.historyStore,
		app.config.OpenRouter.MaxOccasionLength,
		app.logger,
	)
	// A typed-nil *sql.DB must not masquerade as a usable Pinger.
	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	healthHandler := api.NewHealthHandler(pinger, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		// Generation is the only rate-limited surface.
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.NewRateLimitMiddleware(app.limiter))
			r.Post("/generate-doodle", doodleHandler.GenerateDoodle)
		})

		if app.historyStore != nil {
			historyHandler := api.NewHistoryHandler(app.historyStore, app.logger)
			r.Get("/doodles/recent", historyHandler.ListRecent)
		}
	})

	return r
}
