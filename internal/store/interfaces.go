package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Scope restricts a list query to documents whose fields equal the given
// values, e.g. Scope{"tour": id} for the reviews of one tour. Keys are the
// JSON field names of the resource.
type Scope map[string]any

// Repository is the set of generic operations every resource table offers.
type Repository[T any] interface {
	// Schema returns the fields clients may filter, sort and project on.
	Schema() query.Schema

	Create(ctx context.Context, doc T) (T, error)
	FindByID(ctx context.Context, id string) (T, error)
	UpdateByID(ctx context.Context, id string, doc T) (T, error)
	DeleteByID(ctx context.Context, id string) (T, error)
	List(ctx context.Context, f query.Features, scope Scope) ([]T, error)
}

type TourRepository interface {
	Repository[models.Tour]

	FindBySlug(ctx context.Context, slug string) (models.Tour, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.Tour, error)
	// StartLocations returns id, name and start location of every tour.
	StartLocations(ctx context.Context) ([]models.Tour, error)
	Stats(ctx context.Context, minRating float64) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)
}

type UserRepository interface {
	Repository[models.User]

	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// FindByResetToken returns the user whose hashed reset token matches and
	// is still valid at now.
	FindByResetToken(ctx context.Context, hashed string, now time.Time) (models.User, error)
	// SetPassword stores a new hash and clears any pending reset token.
	SetPassword(ctx context.Context, id, hash string, changedAt time.Time) error
	// SetResetToken stores or, with nil arguments, clears a reset token.
	SetResetToken(ctx context.Context, id string, hashed *string, expires *time.Time) error
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type ReviewRepository interface {
	Repository[models.Review]

	FindByTour(ctx context.Context, tourID string) ([]models.Review, error)
	// CalcAverageRatings recomputes and stores the rating aggregate of a
	// tour. A tour without reviews falls back to the default rating.
	CalcAverageRatings(ctx context.Context, tourID string) (models.RatingStats, error)
}

type BookingRepository interface {
	Repository[models.Booking]

	FindByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

// RateLimiter counts requests per key inside a fixed window.
type RateLimiter interface {
	// Allow records one request for key. It returns the number of requests
	// left in the window and the time until the window resets.
	Allow(ctx context.Context, key string) (remaining int, reset time.Duration, err error)
}

// PhotoStorage keeps user photos.
type PhotoStorage interface {
	Save(ctx context.Context, name string, contentType string, r io.Reader, size int64) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
