// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"math"
	"time"
)

// Difficulty grades a [Tour].
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyDifficult Difficulty = "difficult"
)

// Rating bounds and the value a tour falls back to when it has no reviews.
const (
	MinRating     = 1.0
	MaxRating     = 5.0
	DefaultRating = 3.0
)

// GeoPoint is a GeoJSON point with a human-readable label. Coordinates are
// ordered longitude, latitude.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates" validate:"omitempty,len=2"`
	Address     string    `json:"address,omitempty"`
	Description string    `json:"description,omitempty"`
	Day         int       `json:"day,omitempty"`
}

// Lng returns the longitude of the point.
func (p GeoPoint) Lng() float64 {
	if len(p.Coordinates) != 2 {
		return 0
	}
	return p.Coordinates[0]
}

// Lat returns the latitude of the point.
func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) != 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Tour is the central catalogue document.
type Tour struct {
	ID              string             `json:"id"`
	Name            string             `json:"name" validate:"required,textmin=10,textmax=40"`
	Slug            string             `json:"slug"`
	Duration        int                `json:"duration" validate:"required,gt=0"`
	MaxGroupSize    int                `json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty      Difficulty         `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	RatingsAverage  float64            `json:"ratingsAverage" validate:"gte=1,lte=5"`
	RatingsQuantity int                `json:"ratingsQuantity" validate:"gte=0"`
	Price           float64            `json:"price" validate:"required,gt=0"`
	PriceDiscount   float64            `json:"priceDiscount,omitempty" validate:"omitempty,gte=0,ltfield=Price"`
	Summary         string             `json:"summary" validate:"required"`
	Description     string             `json:"description,omitempty"`
	ImageCover      string             `json:"imageCover" validate:"required"`
	Images          []string           `json:"images"`
	CreatedAt       time.Time          `json:"createdAt"`
	StartDates      []time.Time        `json:"startDates"`
	SecretTour      bool               `json:"secretTour"`
	StartLocation   GeoPoint           `json:"startLocation"`
	Locations       []GeoPoint         `json:"locations" validate:"dive"`
	Guides          []Ref[UserSummary] `json:"guides" validate:"dive,uuid"`

	// Reviews is filled only when a single tour is requested.
	Reviews []Review `json:"reviews,omitempty"`
}

// NewTour returns a tour carrying the default field values.
func NewTour() Tour {
	return Tour{
		RatingsAverage: DefaultRating,
		StartLocation:  GeoPoint{Type: "Point"},
	}
}

// DurationWeeks is the tour duration expressed in weeks.
func (t Tour) DurationWeeks() float64 {
	return float64(t.Duration) / 7
}

// AsSummary returns the subset of the tour embedded into bookings.
func (t Tour) AsSummary() TourSummary {
	return TourSummary{
		ID:         t.ID,
		Name:       t.Name,
		Slug:       t.Slug,
		Price:      t.Price,
		ImageCover: t.ImageCover,
	}
}

func (t Tour) MarshalJSON() ([]byte, error) {
	type tour Tour
	return json.Marshal(struct {
		tour
		DurationWeeks float64 `json:"durationWeeks"`
	}{
		tour:          tour(t),
		DurationWeeks: t.DurationWeeks(),
	})
}

// RoundRating clamps a rating into [MinRating, MaxRating] and rounds it to
// one decimal place.
func RoundRating(rating float64) float64 {
	rating = math.Max(MinRating, math.Min(MaxRating, rating))
	return math.Round(rating*10) / 10
}

// TourSummary is the populated form of a tour reference.
type TourSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug,omitempty"`
	Price      float64 `json:"price,omitempty"`
	ImageCover string  `json:"imageCover,omitempty"`
}

// TourStats is one row of the per-difficulty statistics report.
type TourStats struct {
	Difficulty string  `json:"difficulty"`
	NumTours   int     `json:"numTours"`
	NumRatings int     `json:"numRatings"`
	AvgRating  float64 `json:"avgRating"`
	AvgPrice   float64 `json:"avgPrice"`
	MinPrice   float64 `json:"minPrice"`
	MaxPrice   float64 `json:"maxPrice"`
}

// MonthlyPlan lists the tours starting in one month of a year.
type MonthlyPlan struct {
	Month         int      `json:"month"`
	NumTourStarts int      `json:"numTourStarts"`
	Tours         []string `json:"tours"`
}

// TourDistance is the distance from a point to a tour's start location.
type TourDistance struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}
