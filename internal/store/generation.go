package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GenerationRecord is one generation attempt, success or failure, as kept in
// the history store.
type GenerationRecord struct {
	ID        uuid.UUID
	ClientIP  string
	Occasion  string
	StyleHint string
	Success   bool

	// ImageKind is "url" or "base64" on success, empty on failure. The image
	// payload itself is not persisted.
	ImageKind string

	// Error carries the failure reason; empty on success.
	Error string

	GenerationTime time.Duration
	CreatedAt      time.Time
}

// NewGenerationRecord builds a record with a fresh ID and creation time.
func NewGenerationRecord(clientIP, occasion, styleHint string) *GenerationRecord {
	return &GenerationRecord{
		ID:        uuid.New(),
		ClientIP:  clientIP,
		Occasion:  occasion,
		StyleHint: styleHint,
		CreatedAt: time.Now().UTC(),
	}
}

// GenerationStore defines the interface for generation-history persistence.
type GenerationStore interface {
	// Create saves a new generation record.
	Create(ctx context.Context, record *GenerationRecord) error

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*GenerationRecord, error)

	// CountSince returns the number of attempts recorded at or after the
	// given time.
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
