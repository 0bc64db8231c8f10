// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"slices"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

// statsMinRating is the rating threshold of the tour statistics report.
const statsMinRating = 4.5

// tourService serves the tour catalogue. Guides are populated on every
// read; reviews only when a single tour is requested.
type tourService struct {
	*resourceService[models.Tour]

	tourRepository   store.TourRepository
	userRepository   store.UserRepository
	reviewRepository store.ReviewRepository

	logger *logger.Logger
}

func NewTourService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) TourService {
	s := &tourService{
		tourRepository:   storages.TourRepository,
		userRepository:   storages.UserRepository,
		reviewRepository: storages.ReviewRepository,
		logger:           logger,
	}
	s.resourceService = newResourceService("tour", storages.TourRepository, validator, models.NewTour, hooks[models.Tour]{
		beforeSave: s.beforeSave,
		populate:   s.populateGuides,
	}, logger)

	return s
}

// FindByID returns the tour with guides and reviews populated.
func (s *tourService) FindByID(ctx context.Context, id string) (models.Tour, error) {
	tour, err := s.resourceService.FindByID(ctx, id)
	if err != nil {
		return models.Tour{}, err
	}

	return s.withReviews(ctx, tour)
}

func (s *tourService) FindBySlug(ctx context.Context, slug string) (models.Tour, error) {
	tour, err := s.tourRepository.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Tour{}, app.Wrap(err, app.MsgNoTourWithName)
		}
		return models.Tour{}, err
	}

	if err = s.populateOne(ctx, &tour); err != nil {
		return models.Tour{}, err
	}

	return s.withReviews(ctx, tour)
}

func (s *tourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	return s.tourRepository.Stats(ctx, statsMinRating)
}

func (s *tourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	return s.tourRepository.MonthlyPlan(ctx, year)
}

func (s *tourService) Within(ctx context.Context, distance float64, center, unit string) ([]models.Tour, error) {
	lat, lng, err := parseCenter(center, unit)
	if err != nil {
		return nil, err
	}

	starts, err := s.tourRepository.StartLocations(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(starts))
	for _, t := range starts {
		if len(t.StartLocation.Coordinates) != 2 {
			continue
		}
		d, err := utils.HaversineDistance(lat, lng, t.StartLocation.Lat(), t.StartLocation.Lng(), unit)
		if err != nil {
			return nil, err
		}
		if d <= distance {
			ids = append(ids, t.ID)
		}
	}

	tours, err := s.tourRepository.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err = s.populateGuides(ctx, tours); err != nil {
		return nil, err
	}

	return tours, nil
}

func (s *tourService) Distances(ctx context.Context, center, unit string) ([]models.TourDistance, error) {
	lat, lng, err := parseCenter(center, unit)
	if err != nil {
		return nil, err
	}

	starts, err := s.tourRepository.StartLocations(ctx)
	if err != nil {
		return nil, err
	}

	distances := make([]models.TourDistance, 0, len(starts))
	for _, t := range starts {
		if len(t.StartLocation.Coordinates) != 2 {
			continue
		}
		d, err := utils.HaversineDistance(lat, lng, t.StartLocation.Lat(), t.StartLocation.Lng(), unit)
		if err != nil {
			return nil, err
		}
		distances = append(distances, models.TourDistance{ID: t.ID, Name: t.Name, Distance: d})
	}

	slices.SortStableFunc(distances, func(a, b models.TourDistance) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})

	return distances, nil
}

func (s *tourService) beforeSave(_ context.Context, t *models.Tour) error {
	t.Slug = utils.Slugify(t.Name)
	t.RatingsAverage = models.RoundRating(t.RatingsAverage)
	if t.StartLocation.Type == "" {
		t.StartLocation.Type = "Point"
	}
	for i := range t.Locations {
		if t.Locations[i].Type == "" {
			t.Locations[i].Type = "Point"
		}
	}

	return nil
}

// populateGuides embeds the guide summaries into tours.
func (s *tourService) populateGuides(ctx context.Context, tours []models.Tour) error {
	var ids []string
	for _, t := range tours {
		ids = append(ids, models.RefIDs(t.Guides)...)
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := s.userRepository.FindByIDs(ctx, uniq(ids))
	if err != nil {
		return err
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for i := range tours {
		for j := range tours[i].Guides {
			if u, ok := byID[tours[i].Guides[j].ID]; ok {
				tours[i].Guides[j].Populate(u.Summary())
			}
		}
	}

	return nil
}

func (s *tourService) withReviews(ctx context.Context, tour models.Tour) (models.Tour, error) {
	reviews, err := s.reviewRepository.FindByTour(ctx, tour.ID)
	if err != nil {
		return models.Tour{}, err
	}
	if err = populateReviewAuthors(ctx, s.userRepository, reviews); err != nil {
		return models.Tour{}, err
	}
	tour.Reviews = reviews

	return tour, nil
}

func parseCenter(center, unit string) (lat, lng float64, err error) {
	if _, err = utils.EarthRadius(unit); err != nil {
		return 0, 0, app.Wrap(ErrUnsupportedUnit, app.MsgUnsupportedUnit)
	}

	lat, lng, err = utils.ParseLatLng(center)
	if err != nil {
		return 0, 0, app.Wrap(ErrInvalidLatLng, app.MsgInvalidLatLng)
	}

	return lat, lng, nil
}

func uniq(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
