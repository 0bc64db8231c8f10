package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingFindByUser(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT id, tour_id, user_id, price, paid, created_at FROM bookings WHERE user_id = \\$1 ORDER BY created_at DESC, id ASC").
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows(BookingSchema.Columns()).
			AddRow("0190b7a0-0000-7000-8000-0000000000b1", testTourID, testUserID, 397.0, true, time.Now()))

	bookings, err := repo.FindByUser(context.Background(), testUserID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, testTourID, bookings[0].Tour.ID)
	assert.True(t, bookings[0].Paid)
}

func TestBookingUpdateByID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBookingRepository(db, logger.Nop())
	id := "0190b7a0-0000-7000-8000-0000000000b1"

	mock.ExpectQuery("UPDATE bookings SET paid = \\$1, price = \\$2, tour_id = \\$3, user_id = \\$4 WHERE \\(id = \\$5\\) RETURNING").
		WithArgs(false, 500.0, testTourID, testUserID, id).
		WillReturnRows(sqlmock.NewRows(BookingSchema.Columns()).
			AddRow(id, testTourID, testUserID, 500.0, false, time.Now()))

	booking := models.Booking{
		Tour:  models.NewRef[models.TourSummary](testTourID),
		User:  models.NewRef[models.UserSummary](testUserID),
		Price: 500,
	}
	updated, err := repo.UpdateByID(context.Background(), id, booking)
	require.NoError(t, err)
	assert.False(t, updated.Paid)
	assert.Equal(t, 500.0, updated.Price)
}
