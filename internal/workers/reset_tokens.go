package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
)

// ResetTokenJanitor clears expired password reset tokens.
type ResetTokenJanitor struct {
	users    ResetTokenCleaner
	interval time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

func NewResetTokenJanitor(users ResetTokenCleaner, interval time.Duration, logger *logger.Logger) *ResetTokenJanitor {
	return &ResetTokenJanitor{users: users, interval: interval, logger: logger, now: time.Now}
}

func (j *ResetTokenJanitor) Run(ctx context.Context) {
	j.logger.Info().Dur("interval", j.interval).Msg("reset token janitor started")
	every(ctx, j.interval, j.clean)
}

func (j *ResetTokenJanitor) clean(ctx context.Context) {
	n, err := j.users.ClearExpiredResetTokens(ctx, j.now())
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Err(err).Msg("error clearing expired reset tokens")
		}
		return
	}
	if n > 0 {
		j.logger.Debug().Int64("cleared", n).Msg("expired reset tokens cleared")
	}
}
