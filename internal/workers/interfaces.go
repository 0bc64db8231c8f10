// Package workers runs the periodic background jobs of the server.
//
// Every worker stops when the context passed to [Workers.Run] is
// cancelled.
package workers

import (
	"context"
	"time"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// HealthReporter receives the result of every database probe.
type HealthReporter interface {
	SetServing(serving bool)
}

// ResetTokenCleaner removes password reset tokens that are no longer valid.
type ResetTokenCleaner interface {
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
