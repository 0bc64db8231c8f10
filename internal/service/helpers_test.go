package service

import (
	"github.com/MKhiriev/go-tours/internal/mock"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/models"
	"go.uber.org/mock/gomock"
)

const (
	testTourID   = "0190a9a4-1b2c-7d3e-8f40-5a6b7c8d9e01"
	testUserID   = "0190a9a4-1b2c-7d3e-8f40-5a6b7c8d9e02"
	testGuideID  = "0190a9a4-1b2c-7d3e-8f40-5a6b7c8d9e03"
	testReviewID = "0190a9a4-1b2c-7d3e-8f40-5a6b7c8d9e04"
)

// testStorages bundles gomock repositories behind a *store.Storages.
type testStorages struct {
	*store.Storages

	tours    *mock.MockTourRepository
	users    *mock.MockUserRepository
	reviews  *mock.MockReviewRepository
	bookings *mock.MockBookingRepository
	photos   *mock.MockPhotoStorage
}

func newTestStorages(ctrl *gomock.Controller) *testStorages {
	ts := &testStorages{
		tours:    mock.NewMockTourRepository(ctrl),
		users:    mock.NewMockUserRepository(ctrl),
		reviews:  mock.NewMockReviewRepository(ctrl),
		bookings: mock.NewMockBookingRepository(ctrl),
		photos:   mock.NewMockPhotoStorage(ctrl),
	}
	ts.Storages = &store.Storages{
		TourRepository:    ts.tours,
		UserRepository:    ts.users,
		ReviewRepository:  ts.reviews,
		BookingRepository: ts.bookings,
		PhotoStorage:      ts.photos,
	}

	return ts
}

func validTour() models.Tour {
	t := models.NewTour()
	t.ID = testTourID
	t.Name = "The Forest Hiker"
	t.Duration = 5
	t.MaxGroupSize = 25
	t.Difficulty = models.DifficultyEasy
	t.Price = 397
	t.Summary = "Breathtaking hike through the Canadian Banff National Park"
	t.ImageCover = "tour-1-cover.jpg"

	return t
}

func validReview() models.Review {
	return models.Review{
		ID:     testReviewID,
		Review: "An unforgettable week, the guides were absolutely fantastic.",
		Rating: 5,
		Tour:   models.NewRef[models.TourSummary](testTourID),
		User:   models.NewRef[models.UserSummary](testUserID),
	}
}
