package ratelimit

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Store tracks per-client request timestamps within a trailing window.
type Store interface {
	// Admit applies the sliding-window decision for one request: entries
	// older than the window are pruned first, then the request is either
	// recorded and admitted, or rejected without being recorded when the
	// pruned window already holds limit entries.
	Admit(ctx context.Context, clientID string, now time.Time, limit int, window time.Duration) (bool, error)
}

// Limiter decides whether a client request is admitted under the configured
// limit and window.
type Limiter struct {
	logger *slog.Logger
	store  Store
	limit  int
	window time.Duration

	// now is the clock; replaceable in tests.
	now func() time.Time
}

// NewLimiter creates a Limiter over the given store. Both limit and window
// must be positive.
func NewLimiter(logger *slog.Logger, store Store, limit int, window time.Duration) (*Limiter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		return nil, errors.New("store cannot be nil")
	}
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}

	return &Limiter{
		logger: logger.With(slog.String("component", "rate_limiter")),
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}, nil
}

// Allow reports whether the client may make a request now. A store failure
// fails open: the request is admitted and the failure logged, so a broken
// redis never takes the API down with it.
func (l *Limiter) Allow(ctx context.Context, clientID string) bool {
	admitted, err := l.store.Admit(ctx, clientID, l.now(), l.limit, l.window)
	if err != nil {
		l.logger.Warn("rate limit store unavailable, admitting request",
			"error", err,
			"client_id", clientID)
		return true
	}
	return admitted
}

// Limit returns the configured request limit.
func (l *Limiter) Limit() int {
	return l.limit
}

// Window returns the configured window duration.
func (l *Limiter) Window() time.Duration {
	return l.window
}
