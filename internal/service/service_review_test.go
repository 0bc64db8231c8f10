package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestReviewService(t *testing.T) (ReviewService, *testStorages) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ts := newTestStorages(ctrl)

	return NewReviewService(ts.Storages, validators.NewValidator(), logger.Nop()), ts
}

func TestReviewService_Create_RecomputesRatings(t *testing.T) {
	svc, ts := newTestReviewService(t)
	ctx := context.Background()
	review := validReview()

	gomock.InOrder(
		ts.reviews.EXPECT().Create(ctx, review).Return(review, nil),
		ts.reviews.EXPECT().CalcAverageRatings(ctx, testTourID).Return(models.RatingStats{Quantity: 1, Average: 5}, nil),
	)

	got, err := svc.Create(ctx, review)

	require.NoError(t, err)
	assert.Equal(t, testReviewID, got.ID)
}

func TestReviewService_Create_DuplicateReview(t *testing.T) {
	svc, ts := newTestReviewService(t)
	ctx := context.Background()

	ts.reviews.EXPECT().Create(ctx, gomock.Any()).Return(models.Review{}, store.ErrDuplicateKey)

	_, err := svc.Create(ctx, validReview())

	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestReviewService_Create_RatingOutOfRange(t *testing.T) {
	svc, _ := newTestReviewService(t)
	review := validReview()
	review.Rating = 6

	_, err := svc.Create(context.Background(), review)

	assert.ErrorIs(t, err, validators.ErrInvalidInput)
}

func TestReviewService_UpdateByID_RecomputesRatings(t *testing.T) {
	svc, ts := newTestReviewService(t)
	ctx := context.Background()
	review := validReview()

	ts.reviews.EXPECT().FindByID(ctx, testReviewID).Return(review, nil)
	ts.reviews.EXPECT().UpdateByID(ctx, testReviewID, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, r models.Review) (models.Review, error) {
		assert.Equal(t, 3.0, r.Rating)
		return r, nil
	})
	ts.reviews.EXPECT().CalcAverageRatings(ctx, testTourID).Return(models.RatingStats{Quantity: 1, Average: 3}, nil)

	_, err := svc.UpdateByID(ctx, testReviewID, func(r *models.Review) error {
		r.Rating = 3
		return nil
	})

	require.NoError(t, err)
}

func TestReviewService_UpdateByID_MovedReviewRecomputesBothTours(t *testing.T) {
	svc, ts := newTestReviewService(t)
	ctx := context.Background()
	otherTourID := "0190a9a4-1b2c-7d3e-8f40-5a6b7c8d9e05"

	ts.reviews.EXPECT().FindByID(ctx, testReviewID).Return(validReview(), nil)
	ts.reviews.EXPECT().UpdateByID(ctx, testReviewID, gomock.Any()).DoAndReturn(func(_ context.Context, _ string, r models.Review) (models.Review, error) {
		return r, nil
	})
	gomock.InOrder(
		ts.reviews.EXPECT().CalcAverageRatings(ctx, otherTourID).Return(models.RatingStats{Quantity: 1, Average: 5}, nil),
		ts.reviews.EXPECT().CalcAverageRatings(ctx, testTourID).Return(models.RatingStats{Quantity: 0, Average: models.DefaultRating}, nil),
	)

	got, err := svc.UpdateByID(ctx, testReviewID, func(r *models.Review) error {
		r.Tour = models.NewRef[models.TourSummary](otherTourID)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, otherTourID, got.Tour.ID)
}

func TestReviewService_DeleteByID_RecomputesRatings(t *testing.T) {
	svc, ts := newTestReviewService(t)
	ctx := context.Background()

	gomock.InOrder(
		ts.reviews.EXPECT().DeleteByID(ctx, testReviewID).Return(validReview(), nil),
		ts.reviews.EXPECT().CalcAverageRatings(ctx, testTourID).Return(models.RatingStats{Quantity: 0, Average: models.DefaultRating}, nil),
	)

	require.NoError(t, svc.DeleteByID(ctx, testReviewID))
}

func TestReviewService_List_PopulatesAuthors(t *testing.T) {
	svc, ts := newTestReviewService(t)
	ctx := context.Background()
	scope := store.Scope{"tour": testTourID}
	f := query.Features{Page: 1, Limit: 100}

	ts.reviews.EXPECT().List(ctx, f, scope).Return([]models.Review{validReview(), validReview()}, nil)
	ts.users.EXPECT().FindByIDs(ctx, []string{testUserID}).Return([]models.User{{ID: testUserID, Name: "Laura Wilson", Photo: "user-2.jpg"}}, nil)

	got, err := svc.List(ctx, f, scope)

	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, r := range got {
		require.NotNil(t, r.User.Doc)
		assert.Equal(t, "user-2.jpg", r.User.Doc.Photo)
	}
}
