package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-item-keeper/internal/logger"
)

// withLogging writes one access-log entry per request. It must run after
// withTraceID so that the entry carries the trace id. The Authorization
// header is never logged.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
