package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/gowombat/doodle-api/internal/platform/logger"
	"github.com/gowombat/doodle-api/internal/store"
)

// GenerationStore implements the store.GenerationStore interface using a
// PostgreSQL database as the storage backend.
type GenerationStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewGenerationStore creates a new PostgreSQL implementation of the
// GenerationStore interface. The database connection should be initialized
// and managed by the caller. If logger is nil, a default logger is used.
func NewGenerationStore(db *sql.DB, log *slog.Logger) *GenerationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &GenerationStore{
		db:     db,
		logger: log.With(slog.String("component", "generation_store")),
	}
}

// Ensure GenerationStore implements store.GenerationStore interface
var _ store.GenerationStore = (*GenerationStore)(nil)

// Create implements store.GenerationStore.Create.
// Returns store.ErrInvalidEntity when the record is missing required fields.
func (s *GenerationStore) Create(ctx context.Context, record *store.GenerationRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if record == nil || record.Occasion == "" {
		return fmt.Errorf("%w: generation record requires an occasion", store.ErrInvalidEntity)
	}

	query := `
		INSERT INTO doodle_generations
			(id, client_ip, occasion, style_hint, success, image_kind, error, generation_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		record.ID,
		record.ClientIP,
		record.Occasion,
		record.StyleHint,
		record.Success,
		record.ImageKind,
		record.Error,
		record.GenerationTime.Milliseconds(),
		record.CreatedAt,
	)
	if err != nil {
		log.Error("failed to record generation attempt",
			slog.String("error", err.Error()),
			slog.String("record_id", record.ID.String()))
		return err
	}

	log.Debug("generation attempt recorded",
		slog.String("record_id", record.ID.String()),
		slog.Bool("success", record.Success))
	return nil
}

// ListRecent implements store.GenerationStore.ListRecent.
func (s *GenerationStore) ListRecent(ctx context.Context, limit int) ([]*store.GenerationRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, client_ip, occasion, style_hint, success, image_kind, error, generation_ms, created_at
		FROM doodle_generations
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		log.Error("failed to list generation history", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var records []*store.GenerationRecord
	for rows.Next() {
		var record store.GenerationRecord
		var generationMS int64
		if err := rows.Scan(
			&record.ID,
			&record.ClientIP,
			&record.Occasion,
			&record.StyleHint,
			&record.Success,
			&record.ImageKind,
			&record.Error,
			&generationMS,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan generation record: %w", err)
		}
		record.GenerationTime = time.Duration(generationMS) * time.Millisecond
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// CountSince implements store.GenerationStore.CountSince.
func (s *GenerationStore) CountSince(ctx context.Context, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM doodle_generations WHERE created_at >= $1`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count generation attempts: %w", err)
	}
	return count, nil
}
