package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

var BookingSchema = query.NewSchema(
	query.F("id", "id", query.UUID),
	query.F("tour", "tour_id", query.UUID),
	query.F("user", "user_id", query.UUID),
	query.F("price", "price", query.Number),
	query.F("paid", "paid", query.Bool),
	query.F("createdAt", "created_at", query.Time),
)

var bookingTable = table[models.Booking]{
	name:    "bookings",
	schema:  BookingSchema,
	columns: BookingSchema.Columns(),
	targets: func(b *models.Booking) map[string]any {
		return map[string]any{
			"id":         &b.ID,
			"tour_id":    &b.Tour.ID,
			"user_id":    &b.User.ID,
			"price":      &b.Price,
			"paid":       &b.Paid,
			"created_at": &b.CreatedAt,
		}
	},
	values: func(b *models.Booking) map[string]any {
		return map[string]any{
			"tour_id": b.Tour.ID,
			"user_id": b.User.ID,
			"price":   b.Price,
			"paid":    b.Paid,
		}
	},
	identify: func(b *models.Booking, id string, createdAt time.Time) {
		b.ID, b.CreatedAt = id, createdAt
	},
}

type bookingRepository struct {
	*repository[models.Booking]
	logger *logger.Logger
}

func NewBookingRepository(db *DB, logger *logger.Logger) BookingRepository {
	logger.Debug().Msg("creating booking repository")
	return &bookingRepository{
		repository: newRepository(db, bookingTable),
		logger:     logger,
	}
}

// FindByUser returns the bookings of a user, newest first.
func (r *bookingRepository) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.findAll(ctx, "FindByUser", sq.Eq{"user_id": userID}, "created_at DESC", "id ASC")
}
