package adapter

import (
	"context"

	"github.com/MKhiriev/go-tours/internal/logger"
)

// logSender writes emails to the log instead of delivering them. It is the
// development transport.
type logSender struct {
	logger *logger.Logger
}

func (s *logSender) send(ctx context.Context, msg message) error {
	s.logger.Info().
		Str("from", msg.From).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("html", msg.HTML).
		Msg("email")

	return nil
}
