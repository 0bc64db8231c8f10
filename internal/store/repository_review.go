package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

var ReviewSchema = query.NewSchema(
	query.F("id", "id", query.UUID),
	query.F("review", "review", query.String),
	query.F("rating", "rating", query.Number).WithMulti(),
	query.F("createdAt", "created_at", query.Time),
	query.F("tour", "tour_id", query.UUID),
	query.F("user", "user_id", query.UUID),
)

var reviewTable = table[models.Review]{
	name:    "reviews",
	schema:  ReviewSchema,
	columns: ReviewSchema.Columns(),
	targets: func(r *models.Review) map[string]any {
		return map[string]any{
			"id":         &r.ID,
			"review":     &r.Review,
			"rating":     &r.Rating,
			"created_at": &r.CreatedAt,
			"tour_id":    &r.Tour.ID,
			"user_id":    &r.User.ID,
		}
	},
	values: func(r *models.Review) map[string]any {
		return map[string]any{
			"review":  r.Review,
			"rating":  r.Rating,
			"tour_id": r.Tour.ID,
			"user_id": r.User.ID,
		}
	},
	identify: func(r *models.Review, id string, createdAt time.Time) {
		r.ID, r.CreatedAt = id, createdAt
	},
}

// reviewRepository is the PostgreSQL-backed implementation of
// [ReviewRepository]. A (tour, user) pair may appear only once; a second
// insert fails with [ErrDuplicateKey].
type reviewRepository struct {
	*repository[models.Review]
	logger *logger.Logger
}

func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	logger.Debug().Msg("creating review repository")
	return &reviewRepository{
		repository: newRepository(db, reviewTable),
		logger:     logger,
	}
}

// FindByTour returns the reviews of a tour, newest first.
func (r *reviewRepository) FindByTour(ctx context.Context, tourID string) ([]models.Review, error) {
	return r.findAll(ctx, "FindByTour", sq.Eq{"tour_id": tourID}, "created_at DESC", "id ASC")
}

func (r *reviewRepository) CalcAverageRatings(ctx context.Context, tourID string) (models.RatingStats, error) {
	log := logger.FromContext(ctx)

	var stats models.RatingStats
	err := r.db.QueryRowContext(ctx, calcAverageRatings, tourID).Scan(&stats.Quantity, &stats.Average)
	if err != nil {
		err = translateError(err, ErrExecutingStatement)
		log.Err(err).Str("func", "*reviewRepository.CalcAverageRatings").Str("tour_id", tourID).Msg("error recomputing ratings")
		return models.RatingStats{}, err
	}

	return stats, nil
}
