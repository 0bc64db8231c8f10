package http

import (
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
)

// withRateLimit counts requests per client IP. Over the limit the request
// is answered with 429. A failing limiter lets the request through.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		remaining, reset, err := h.limiter.Allow(r.Context(), clientIP(r))

		if err != nil && !errors.Is(err, store.ErrRateLimited) {
			logger.FromRequest(r).Err(err).Msg("rate limiter unavailable")
			next.ServeHTTP(w, r)
			return nil
		}

		header := w.Header()
		header.Set("X-RateLimit-Limit", strconv.Itoa(h.server.RateLimit))
		header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		header.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(reset).Unix(), 10))

		if err != nil {
			header.Set("Retry-After", strconv.Itoa(int(math.Ceil(reset.Seconds()))))
			return app.Wrap(err, app.MsgTooManyRequests)
		}

		next.ServeHTTP(w, r)
		return nil
	})
}

// clientIP is the host part of RemoteAddr, which RealIP has already
// replaced with the forwarded address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
