package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gowombat/doodle-api/internal/api/shared"
)

// Version is the application version reported by the health endpoint.
const Version = "1.0.0"

// Pinger is the slice of the database handle the health check needs.
// *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db     Pinger // nil when no database is configured
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler. db may be nil.
func NewHealthHandler(db Pinger, log *slog.Logger) *HealthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HealthHandler{
		db:     db,
		logger: log.With(slog.String("component", "health_handler")),
	}
}

// Check handles GET /api/health requests. The service reports unhealthy only
// when a database is configured and unreachable; with no database the check
// is unconditional.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Error("health check database ping failed", "error", err)
			status = "unhealthy"
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    status,
		Version:   Version,
		Timestamp: time.Now().UTC(),
	})
}
