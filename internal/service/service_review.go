package service

import (
	"context"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

// reviewService keeps the rating aggregate of a tour in step with its
// reviews: every write recomputes it.
type reviewService struct {
	*resourceService[models.Review]

	reviewRepository store.ReviewRepository
	userRepository   store.UserRepository

	logger *logger.Logger
}

func NewReviewService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) ReviewService {
	s := &reviewService{
		reviewRepository: storages.ReviewRepository,
		userRepository:   storages.UserRepository,
		logger:           logger,
	}
	s.resourceService = newResourceService("review", storages.ReviewRepository, validator, newReview, hooks[models.Review]{
		afterWrite:  s.calcAverageRatings,
		afterUpdate: s.recalcMovedRatings,
		populate:    s.populate,
	}, logger)

	return s
}

func newReview() models.Review {
	return models.Review{}
}

func (s *reviewService) calcAverageRatings(ctx context.Context, r models.Review) error {
	stats, err := s.reviewRepository.CalcAverageRatings(ctx, r.Tour.ID)
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().
		Str("tour_id", r.Tour.ID).
		Int("ratings_quantity", stats.Quantity).
		Float64("ratings_average", stats.Average).
		Msg("tour ratings recomputed")

	return nil
}

// recalcMovedRatings also recomputes the previous tour when an update moved
// the review to another tour.
func (s *reviewService) recalcMovedRatings(ctx context.Context, before, after models.Review) error {
	if err := s.calcAverageRatings(ctx, after); err != nil {
		return err
	}
	if before.Tour.ID == "" || before.Tour.ID == after.Tour.ID {
		return nil
	}

	return s.calcAverageRatings(ctx, before)
}

func (s *reviewService) populate(ctx context.Context, reviews []models.Review) error {
	return populateReviewAuthors(ctx, s.userRepository, reviews)
}

// populateReviewAuthors embeds name and photo of the review authors.
func populateReviewAuthors(ctx context.Context, users store.UserRepository, reviews []models.Review) error {
	var ids []string
	for _, r := range reviews {
		if r.User.ID != "" {
			ids = append(ids, r.User.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := users.FindByIDs(ctx, uniq(ids))
	if err != nil {
		return err
	}
	byID := make(map[string]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}

	for i := range reviews {
		if u, ok := byID[reviews[i].User.ID]; ok {
			reviews[i].User.Populate(models.UserSummary{ID: u.ID, Name: u.Name, Photo: u.Photo})
		}
	}

	return nil
}
