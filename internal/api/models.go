package api

import "time"

// Common request/response structures

// DoodleRequest defines the payload for the doodle generation endpoint.
// The occasion is trimmed before validation, so surrounding whitespace does
// not count toward the length bounds.
type DoodleRequest struct {
	Occasion  string `json:"occasion"   validate:"required,min=3,max=500"`
	StyleHint string `json:"style_hint" validate:"omitempty,max=200"`
}

// DoodleResponse defines the response for the doodle generation endpoint.
// On success exactly one of ImageURL and ImageBase64 is set; on failure both
// are empty and Error carries the reason. GenerationTime is wall-clock
// seconds spent on the attempt, populated on every outcome.
type DoodleResponse struct {
	Success        bool      `json:"success"`
	ImageURL       string    `json:"image_url,omitempty"`
	ImageBase64    string    `json:"image_base64,omitempty"`
	Occasion       string    `json:"occasion"`
	GenerationTime float64   `json:"generation_time"`
	Timestamp      time.Time `json:"timestamp"`
	Error          string    `json:"error,omitempty"`
}

// HealthResponse defines the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryEntryResponse is one generation attempt in the history listing.
type HistoryEntryResponse struct {
	ID             string    `json:"id"`
	Occasion       string    `json:"occasion"`
	StyleHint      string    `json:"style_hint,omitempty"`
	Success        bool      `json:"success"`
	ImageKind      string    `json:"image_kind,omitempty"`
	Error          string    `json:"error,omitempty"`
	GenerationTime float64   `json:"generation_time"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryResponse defines the response for the generation history endpoint.
type HistoryResponse struct {
	Doodles     []HistoryEntryResponse `json:"doodles"`
	CountLast24 int64                  `json:"count_last_24h"`
}
