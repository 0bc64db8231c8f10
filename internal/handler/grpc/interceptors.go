package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const traceIDKey = "x-trace-id"

// UnaryLoggingInterceptor attaches a trace-tagged logger to the context and
// writes one log line per call.
func (h *Handler) UnaryLoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()

	traceID := uuid.NewString()
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(traceIDKey); len(v) > 0 && v[0] != "" {
			traceID = v[0]
		}
	}

	log := h.logger.WithTraceID(traceID)
	resp, err := next(log.WithContext(ctx), req)

	log.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}
