package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
)

const pingTimeout = 5 * time.Second

// HealthProbe pings the database and reports the outcome, logging only
// when the state changes.
type HealthProbe struct {
	db       store.HealthChecker
	reporter HealthReporter
	interval time.Duration
	logger   *logger.Logger

	healthy *bool
}

func NewHealthProbe(db store.HealthChecker, reporter HealthReporter, interval time.Duration, logger *logger.Logger) *HealthProbe {
	return &HealthProbe{db: db, reporter: reporter, interval: interval, logger: logger}
}

func (p *HealthProbe) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("database health probe started")
	every(ctx, p.interval, p.probe)
	p.reporter.SetServing(false)
}

func (p *HealthProbe) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := p.db.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}
	healthy := err == nil

	if p.healthy == nil || *p.healthy != healthy {
		if healthy {
			p.logger.Info().Msg("database is reachable")
		} else {
			p.logger.Err(err).Msg("database is unreachable")
		}
	}
	p.healthy = &healthy

	p.reporter.SetServing(healthy)
}
