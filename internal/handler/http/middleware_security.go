package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
)

// securityHeaders returns the middlewares setting the standard hardening
// headers. Strict-Transport-Security is only sent in production.
func (h *Handler) securityHeaders() []func(http.Handler) http.Handler {
	headers := [][2]string{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "SAMEORIGIN"},
		{"X-DNS-Prefetch-Control", "off"},
		{"X-Download-Options", "noopen"},
		{"X-Permitted-Cross-Domain-Policies", "none"},
		{"X-XSS-Protection", "0"},
		{"Referrer-Policy", "no-referrer"},
		{"Cross-Origin-Opener-Policy", "same-origin"},
	}
	if h.app.IsProduction() {
		headers = append(headers, [2]string{"Strict-Transport-Security", "max-age=15552000; includeSubDomains"})
	}

	mws := make([]func(http.Handler) http.Handler, 0, len(headers))
	for _, kv := range headers {
		mws = append(mws, middleware.SetHeader(kv[0], kv[1]))
	}

	return mws
}

// withCORS allows the configured origins, or any origin when none are
// configured, to call the API.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	origins := h.server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", traceIDHeader}),
		handlers.ExposedHeaders([]string{traceIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}),
	)
}

// withCompression gzips responses for clients that accept it.
func withCompression(next http.Handler) http.Handler {
	return handlers.CompressHandler(next)
}
