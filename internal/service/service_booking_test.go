package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/mock"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestBookingService(t *testing.T) (BookingService, *testStorages, *mock.MockPaymentGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ts := newTestStorages(ctrl)
	payments := mock.NewMockPaymentGateway(ctrl)

	return NewBookingService(ts.Storages, payments, validators.NewValidator(), logger.Nop()), ts, payments
}

func TestBookingService_CheckoutSession(t *testing.T) {
	svc, ts, payments := newTestBookingService(t)
	ctx := context.Background()
	tour := validTour()
	tour.Slug = "the-forest-hiker"
	user := models.User{ID: testUserID, Email: "laura@example.com"}

	ts.tours.EXPECT().FindByID(ctx, testTourID).Return(tour, nil)
	payments.EXPECT().CreateCheckoutSession(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, req models.CheckoutRequest) (models.CheckoutSession, error) {
		assert.Equal(t, "laura@example.com", req.CustomerEmail)
		assert.Equal(t, testTourID, req.ClientRef)
		assert.Equal(t, "http://localhost:3000/tour/the-forest-hiker", req.CancelURL)
		assert.Equal(t, "http://localhost:3000/img/tours", req.ImageBaseURL)

		u, err := url.Parse(req.SuccessURL)
		require.NoError(t, err)
		assert.Equal(t, testTourID, u.Query().Get("tour"))
		assert.Equal(t, testUserID, u.Query().Get("user"))
		assert.Equal(t, "397", u.Query().Get("price"))

		return models.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/pay/cs_test_1"}, nil
	})

	got, err := svc.CheckoutSession(ctx, testTourID, user, "http://localhost:3000/")

	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", got.ID)
}

func TestBookingService_CheckoutSession_GatewayError(t *testing.T) {
	svc, ts, payments := newTestBookingService(t)
	ctx := context.Background()

	ts.tours.EXPECT().FindByID(ctx, testTourID).Return(validTour(), nil)
	payments.EXPECT().CreateCheckoutSession(ctx, gomock.Any()).Return(models.CheckoutSession{}, adapter.ErrPaymentsNotConfigured)

	_, err := svc.CheckoutSession(ctx, testTourID, models.User{ID: testUserID}, "http://localhost:3000")

	assert.ErrorIs(t, err, adapter.ErrPaymentsNotConfigured)
}

func TestBookingService_CreateFromCheckout(t *testing.T) {
	svc, ts, _ := newTestBookingService(t)
	ctx := context.Background()

	ts.bookings.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, b models.Booking) (models.Booking, error) {
		assert.Equal(t, testTourID, b.Tour.ID)
		assert.Equal(t, testUserID, b.User.ID)
		assert.Equal(t, 397.0, b.Price)
		assert.True(t, b.Paid)
		return b, nil
	})

	_, err := svc.CreateFromCheckout(ctx, testTourID, testUserID, 397)

	require.NoError(t, err)
}

func TestBookingService_CreateFromCheckout_InvalidIDs(t *testing.T) {
	svc, _, _ := newTestBookingService(t)

	_, err := svc.CreateFromCheckout(context.Background(), "x", testUserID, 397)

	assert.ErrorIs(t, err, validators.ErrInvalidInput)
}

func TestBookingService_BookedTours(t *testing.T) {
	svc, ts, _ := newTestBookingService(t)
	ctx := context.Background()

	ts.bookings.EXPECT().FindByUser(ctx, testUserID).Return([]models.Booking{
		{Tour: models.NewRef[models.TourSummary](testTourID)},
		{Tour: models.NewRef[models.TourSummary](testTourID)},
	}, nil)
	ts.tours.EXPECT().FindByIDs(ctx, []string{testTourID}).Return([]models.Tour{validTour()}, nil)

	got, err := svc.BookedTours(ctx, testUserID)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestBookingService_BookedTours_None(t *testing.T) {
	svc, ts, _ := newTestBookingService(t)
	ctx := context.Background()

	ts.bookings.EXPECT().FindByUser(ctx, testUserID).Return([]models.Booking{}, nil)

	got, err := svc.BookedTours(ctx, testUserID)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBookingService_FindByID_Populates(t *testing.T) {
	svc, ts, _ := newTestBookingService(t)
	ctx := context.Background()
	booking := models.Booking{
		ID:    testReviewID,
		Tour:  models.NewRef[models.TourSummary](testTourID),
		User:  models.NewRef[models.UserSummary](testUserID),
		Price: 397,
		Paid:  true,
	}

	ts.bookings.EXPECT().FindByID(ctx, testReviewID).Return(booking, nil)
	ts.tours.EXPECT().FindByIDs(ctx, []string{testTourID}).Return([]models.Tour{validTour()}, nil)
	ts.users.EXPECT().FindByIDs(ctx, []string{testUserID}).Return([]models.User{{ID: testUserID, Name: "Laura Wilson"}}, nil)

	got, err := svc.FindByID(ctx, testReviewID)

	require.NoError(t, err)
	require.NotNil(t, got.Tour.Doc)
	assert.Equal(t, "The Forest Hiker", got.Tour.Doc.Name)
	assert.Equal(t, validTour().Price, got.Tour.Doc.Price)
	require.NotNil(t, got.User.Doc)
	assert.Equal(t, "Laura Wilson", got.User.Doc.Name)
}
