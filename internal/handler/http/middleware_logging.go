package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/go-chi/chi/v5"
)

// withLogging writes one access log line per request.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		event := logger.FromRequest(r).Info()
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			event = event.Str("route", rctx.RoutePattern())
		}
		event.
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Str("remote_ip", clientIP(r)).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
