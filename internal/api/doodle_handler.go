package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gowombat/doodle-api/internal/api/middleware"
	"github.com/gowombat/doodle-api/internal/api/shared"
	"github.com/gowombat/doodle-api/internal/generation"
	"github.com/gowombat/doodle-api/internal/platform/logger"
	"github.com/gowombat/doodle-api/internal/store"
)

// DoodleHandler handles doodle generation HTTP requests.
type DoodleHandler struct {
	generator generation.Generator
	history   store.GenerationStore // nil when no database is configured
	logger    *slog.Logger

	// maxOccasionLength caps the occasion after trimming; the struct tag
	// carries the contract default, this carries the configured value.
	maxOccasionLength int
}

// NewDoodleHandler creates a new DoodleHandler. history may be nil, in which
// case generation attempts are not recorded.
func NewDoodleHandler(
	generator generation.Generator,
	history store.GenerationStore,
	maxOccasionLength int,
	log *slog.Logger,
) *DoodleHandler {
	if log == nil {
		log = slog.Default()
	}
	return &DoodleHandler{
		generator:         generator,
		history:           history,
		logger:            log.With(slog.String("component", "doodle_handler")),
		maxOccasionLength: maxOccasionLength,
	}
}

// GenerateDoodle handles POST /api/generate-doodle requests.
//
// Validation failures return 400 before any upstream call. Generation-path
// failures (upstream error, timeout, unrecognizable response) degrade to a
// 200 with success=false; the boundary never surfaces them as faults.
func (h *DoodleHandler) GenerateDoodle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req DoodleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	req.Occasion = strings.TrimSpace(req.Occasion)
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}
	// Count characters, not bytes: the bounds must treat Cyrillic and other
	// multi-byte occasions the same as ASCII ones.
	if h.maxOccasionLength > 0 && utf8.RuneCountInString(req.Occasion) > h.maxOccasionLength {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid Occasion: too long")
		return
	}

	log.Info("generating doodle",
		slog.Int("occasion_length", len(req.Occasion)),
		slog.Bool("has_style_hint", req.StyleHint != ""))

	result := h.generator.GenerateDoodle(r.Context(), req.Occasion, req.StyleHint)

	h.recordAttempt(r, &req, result)

	shared.RespondWithJSON(w, r, http.StatusOK, DoodleResponse{
		Success:        result.Succeeded(),
		ImageURL:       result.ImageURL,
		ImageBase64:    result.ImageBase64,
		Occasion:       req.Occasion,
		GenerationTime: result.Elapsed.Seconds(),
		Timestamp:      time.Now().UTC(),
		Error:          result.Reason,
	})
}

// recordAttempt writes the attempt to the history store, best effort: a
// recording failure is logged and never surfaced to the caller.
func (h *DoodleHandler) recordAttempt(r *http.Request, req *DoodleRequest, result *generation.Result) {
	if h.history == nil {
		return
	}

	record := store.NewGenerationRecord(middleware.ClientIP(r), req.Occasion, req.StyleHint)
	record.Success = result.Succeeded()
	record.Error = result.Reason
	record.GenerationTime = result.Elapsed
	if result.ImageBase64 != "" {
		record.ImageKind = "base64"
	} else if result.ImageURL != "" {
		record.ImageKind = "url"
	}

	if err := h.history.Create(r.Context(), record); err != nil {
		h.logger.Warn("failed to record generation attempt", "error", err)
	}
}
