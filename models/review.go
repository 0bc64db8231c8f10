// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Review is a user's rating of a tour. A user reviews a tour at most once.
type Review struct {
	ID        string           `json:"id"`
	Review    string           `json:"review" validate:"required,textmin=30"`
	Rating    float64          `json:"rating" validate:"required,gte=1,lte=5"`
	CreatedAt time.Time        `json:"createdAt"`
	Tour      Ref[TourSummary] `json:"tour" validate:"required,uuid"`
	User      Ref[UserSummary] `json:"user" validate:"required,uuid"`
}

// RatingStats is the aggregate of all reviews of a tour.
type RatingStats struct {
	Quantity int
	Average  float64
}
