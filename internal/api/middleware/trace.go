// Package middleware holds the HTTP middleware of the API server.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/vivasim/viva-api/internal/api/shared"
)

// Trace adds a trace ID to the request context. Apply it early in the
// chain so all subsequent handlers can correlate their logs.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		slog.With(slog.String("trace_id", traceID)).Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
