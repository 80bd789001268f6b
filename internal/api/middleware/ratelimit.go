package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gowombat/doodle-api/internal/api/shared"
	"github.com/gowombat/doodle-api/internal/ratelimit"
)

// NewRateLimitMiddleware returns a middleware that admits or rejects
// requests per client IP using the given limiter. Rejected requests get a
// 429 response naming the configured limit and window; they never reach the
// wrapped handler.
func NewRateLimitMiddleware(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), ClientIP(r)) {
				shared.RespondWithError(w, r, http.StatusTooManyRequests,
					fmt.Sprintf("Rate limit exceeded. Maximum %d requests per %s.",
						limiter.Limit(), humanWindow(limiter.Window())))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the client identifier for rate limiting and history
// records. chi's RealIP middleware has already folded the usual proxy
// headers into RemoteAddr; this strips the port when one is present.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// humanWindow renders common window sizes the way the rejection message has
// always phrased them ("per hour"), falling back to Duration formatting.
func humanWindow(window time.Duration) string {
	switch window {
	case time.Hour:
		return "hour"
	case time.Minute:
		return "minute"
	case 24 * time.Hour:
		return "day"
	}
	return window.String()
}
