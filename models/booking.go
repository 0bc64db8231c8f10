// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Booking records that a user paid for a tour.
type Booking struct {
	ID        string           `json:"id"`
	Tour      Ref[TourSummary] `json:"tour" validate:"required,uuid"`
	User      Ref[UserSummary] `json:"user" validate:"required,uuid"`
	Price     float64          `json:"price" validate:"required,gt=0"`
	Paid      bool             `json:"paid"`
	CreatedAt time.Time        `json:"createdAt"`
}

// NewBooking returns a booking carrying the default field values.
func NewBooking() Booking {
	return Booking{Paid: true}
}

// CheckoutRequest describes a hosted payment page for one tour.
type CheckoutRequest struct {
	Tour          Tour
	CustomerEmail string
	ClientRef     string
	SuccessURL    string
	CancelURL     string
	ImageBaseURL  string
}

// CheckoutSession is the payment provider's answer to a [CheckoutRequest].
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
