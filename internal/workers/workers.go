package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the database health probe, when a reporter is given,
// and the reset token janitor.
func NewWorkers(storages *store.Storages, reporter HealthReporter, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if reporter != nil {
		w.workers = append(w.workers, NewHealthProbe(storages.DB, reporter, cfg.HealthInterval, logger))
	}
	w.workers = append(w.workers, NewResetTokenJanitor(storages.UserRepository, cfg.ResetTokenInterval, logger))

	return w
}

// Run starts every worker and waits until all of them have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}

// every calls fn immediately and then once per interval until ctx is done.
func every(ctx context.Context, interval time.Duration, fn func(ctx context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		fn(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
