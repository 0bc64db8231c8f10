package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
)

// Storages bundles every persistence component the service layer needs.
type Storages struct {
	DB *DB

	TourRepository    TourRepository
	UserRepository    UserRepository
	ReviewRepository  ReviewRepository
	BookingRepository BookingRepository

	RateLimiter  RateLimiter
	PhotoStorage PhotoStorage

	closers []func() error
}

// NewStorages connects to PostgreSQL, applies the migrations and builds the
// repositories. Rate-limit counters live in Redis when an address is
// configured and in memory otherwise; photos go to MinIO when an endpoint
// is configured and to the local photo directory otherwise.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	log.Debug().Msg("creating storages")

	db, err := NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, err
	}
	s := &Storages{DB: db}
	s.closers = append(s.closers, db.Close)

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, errors.Join(err, s.Close())
	}

	s.TourRepository = NewTourRepository(db, log)
	s.UserRepository = NewUserRepository(db, log)
	s.ReviewRepository = NewReviewRepository(db, log)
	s.BookingRepository = NewBookingRepository(db, log)

	if cfg.Storage.Redis.Address != "" {
		client, err := NewRedisClient(ctx, cfg.Storage.Redis, log)
		if err != nil {
			return nil, errors.Join(err, s.Close())
		}
		s.closers = append(s.closers, client.Close)
		s.RateLimiter = NewRedisRateLimiter(client, cfg.Server.RateLimit, cfg.Server.RateWindow)
	} else {
		s.RateLimiter = NewMemoryRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	if cfg.Storage.Photos.Endpoint != "" {
		s.PhotoStorage, err = NewMinioPhotoStorage(ctx, cfg.Storage.Photos, log)
	} else {
		s.PhotoStorage, err = NewFilePhotoStorage(cfg.Storage.Photos.Dir)
	}
	if err != nil {
		return nil, errors.Join(fmt.Errorf("error creating photo storage: %w", err), s.Close())
	}

	return s, nil
}

// Close releases the database and Redis connections.
func (s *Storages) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil

	return errors.Join(errs...)
}
