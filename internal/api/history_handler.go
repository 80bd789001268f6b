package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gowombat/doodle-api/internal/api/shared"
	"github.com/gowombat/doodle-api/internal/platform/logger"
	"github.com/gowombat/doodle-api/internal/store"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryHandler serves the recorded generation history. It is only routed
// when a history store is configured.
type HistoryHandler struct {
	history store.GenerationStore
	logger  *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history store.GenerationStore, log *slog.Logger) *HistoryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HistoryHandler{
		history: history,
		logger:  log.With(slog.String("component", "history_handler")),
	}
}

// ListRecent handles GET /api/doodles/recent requests. The optional "limit"
// query parameter caps the number of entries returned.
func (h *HistoryHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := h.history.ListRecent(r.Context(), limit)
	if err != nil {
		log.Error("failed to load generation history", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to load generation history")
		return
	}

	// The 24h count is informational; a failure degrades it to zero.
	count, err := h.history.CountSince(r.Context(), time.Now().Add(-24*time.Hour))
	if err != nil {
		log.Warn("failed to count recent generations", "error", err)
	}

	entries := make([]HistoryEntryResponse, 0, len(records))
	for _, record := range records {
		entries = append(entries, HistoryEntryResponse{
			ID:             record.ID.String(),
			Occasion:       record.Occasion,
			StyleHint:      record.StyleHint,
			Success:        record.Success,
			ImageKind:      record.ImageKind,
			Error:          record.Error,
			GenerationTime: record.GenerationTime.Seconds(),
			CreatedAt:      record.CreatedAt,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{
		Doodles:     entries,
		CountLast24: count,
	})
}
