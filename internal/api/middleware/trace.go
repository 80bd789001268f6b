package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gowombat/doodle-api/internal/api/shared"
	"github.com/gowombat/doodle-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and a trace-scoped
// logger alongside it. This middleware should be applied early in the chain
// so all subsequent handlers log with the trace ID attached.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithContext(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
