// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

// TourSchema lists the queryable tour fields. difficulty, duration,
// maxGroupSize, price and the ratings may repeat in the query string.
var TourSchema = query.NewSchema(
	query.F("id", "id", query.UUID),
	query.F("name", "name", query.String),
	query.F("slug", "slug", query.String),
	query.F("duration", "duration", query.Integer).WithMulti(),
	query.F("maxGroupSize", "max_group_size", query.Integer).WithMulti(),
	query.F("difficulty", "difficulty", query.String).WithMulti(),
	query.F("ratingsAverage", "ratings_average", query.Number).WithMulti(),
	query.F("ratingsQuantity", "ratings_quantity", query.Integer).WithMulti(),
	query.F("price", "price", query.Number).WithMulti(),
	query.F("priceDiscount", "price_discount", query.Number),
	query.F("summary", "summary", query.String),
	query.F("description", "description", query.String),
	query.F("imageCover", "image_cover", query.String),
	query.F("images", "images", query.JSON),
	query.F("createdAt", "created_at", query.Time).WithHidden(),
	query.F("startDates", "start_dates", query.JSON),
	query.F("secretTour", "secret_tour", query.Bool),
	query.F("startLocation", "start_location", query.JSON),
	query.F("locations", "locations", query.JSON),
	query.F("guides", "guides", query.JSON),
)

var tourTable = table[models.Tour]{
	name:    "tours",
	schema:  TourSchema,
	columns: TourSchema.Columns(),
	scope:   sq.Eq{"secret_tour": false},
	targets: func(t *models.Tour) map[string]any {
		return map[string]any{
			"id":               &t.ID,
			"name":             &t.Name,
			"slug":             &t.Slug,
			"duration":         &t.Duration,
			"max_group_size":   &t.MaxGroupSize,
			"difficulty":       &t.Difficulty,
			"ratings_average":  &t.RatingsAverage,
			"ratings_quantity": &t.RatingsQuantity,
			"price":            &t.Price,
			"price_discount":   &t.PriceDiscount,
			"summary":          &t.Summary,
			"description":      &t.Description,
			"image_cover":      &t.ImageCover,
			"images":           asJSON(&t.Images),
			"created_at":       &t.CreatedAt,
			"start_dates":      asJSON(&t.StartDates),
			"secret_tour":      &t.SecretTour,
			"start_location":   asJSON(&t.StartLocation),
			"locations":        asJSON(&t.Locations),
			"guides":           asRefs(&t.Guides),
		}
	},
	values: func(t *models.Tour) map[string]any {
		return map[string]any{
			"name":             t.Name,
			"slug":             t.Slug,
			"duration":         t.Duration,
			"max_group_size":   t.MaxGroupSize,
			"difficulty":       string(t.Difficulty),
			"ratings_average":  t.RatingsAverage,
			"ratings_quantity": t.RatingsQuantity,
			"price":            t.Price,
			"price_discount":   t.PriceDiscount,
			"summary":          t.Summary,
			"description":      t.Description,
			"image_cover":      t.ImageCover,
			"images":           asJSON(nonNil(&t.Images)),
			"start_dates":      asJSON(nonNil(&t.StartDates)),
			"secret_tour":      t.SecretTour,
			"start_location":   asJSON(&t.StartLocation),
			"locations":        asJSON(nonNil(&t.Locations)),
			"guides":           asRefs(&t.Guides),
		}
	},
	identify: func(t *models.Tour, id string, createdAt time.Time) {
		t.ID, t.CreatedAt = id, createdAt
	},
}

// nonNil replaces a nil slice with an empty one so that it is stored as []
// rather than null.
func nonNil[E any](s *[]E) *[]E {
	if *s == nil {
		*s = []E{}
	}
	return s
}

// tourRepository is the PostgreSQL-backed implementation of [TourRepository].
// Secret tours are invisible to every method.
type tourRepository struct {
	*repository[models.Tour]
	logger *logger.Logger
}

// NewTourRepository constructs a [TourRepository] backed by db.
func NewTourRepository(db *DB, logger *logger.Logger) TourRepository {
	logger.Debug().Msg("creating tour repository")
	return &tourRepository{
		repository: newRepository(db, tourTable),
		logger:     logger,
	}
}

func (r *tourRepository) FindBySlug(ctx context.Context, slug string) (models.Tour, error) {
	return r.findOne(ctx, "FindBySlug", sq.Eq{"slug": slug})
}

func (r *tourRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Tour, error) {
	if len(ids) == 0 {
		return []models.Tour{}, nil
	}

	return r.findAll(ctx, "FindByIDs", sq.Eq{"id": ids})
}

func (r *tourRepository) StartLocations(ctx context.Context) ([]models.Tour, error) {
	columns := []string{"id", "name", "start_location"}
	builder := psql.Select(columns...).
		From(tourTable.name).
		Where(tourTable.scope).
		OrderBy("name ASC")

	return r.queryRows(ctx, "StartLocations", builder, columns)
}

// Stats aggregates the tours rated at least minRating per difficulty,
// cheapest group first.
func (r *tourRepository) Stats(ctx context.Context, minRating float64) ([]models.TourStats, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, tourStats, minRating)
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.Stats").Msg("error executing query")
		return nil, translateError(err, ErrExecutingQuery)
	}
	defer rows.Close()

	stats := make([]models.TourStats, 0)
	for rows.Next() {
		var s models.TourStats
		if err = rows.Scan(&s.Difficulty, &s.NumTours, &s.NumRatings, &s.AvgRating, &s.AvgPrice, &s.MinPrice, &s.MaxPrice); err != nil {
			log.Err(err).Str("func", "*tourRepository.Stats").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		stats = append(stats, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return stats, nil
}

// MonthlyPlan counts the tour starts per month of year, busiest month first.
func (r *tourRepository) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	log := logger.FromContext(ctx)

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	rows, err := r.db.QueryContext(ctx, monthlyPlan, from, from.AddDate(1, 0, 0))
	if err != nil {
		log.Err(err).Str("func", "*tourRepository.MonthlyPlan").Msg("error executing query")
		return nil, translateError(err, ErrExecutingQuery)
	}
	defer rows.Close()

	plan := make([]models.MonthlyPlan, 0, 12)
	for rows.Next() {
		var p models.MonthlyPlan
		if err = rows.Scan(&p.Month, &p.NumTourStarts, asJSON(&p.Tours)); err != nil {
			log.Err(err).Str("func", "*tourRepository.MonthlyPlan").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		plan = append(plan, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return plan, nil
}
