// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of the go-tours server:
// transactional email and hosted payment checkout.
//
// Email is sent through [Mailer], which renders the embedded templates and
// hands the result to one of three transports chosen by configuration: SMTP,
// the SendGrid REST API or the application log. Checkout sessions are created
// by [PaymentGateway] against the Stripe REST API.
//
// Provider responses outside 2xx become one of the ErrProvider sentinels
// carrying the provider's own error message.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-tours/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Mailer sends the transactional emails of the account lifecycle.
type Mailer interface {
	// SendWelcome greets a freshly signed-up user. url points to the
	// account page.
	SendWelcome(ctx context.Context, user models.User, url string) error

	// SendPasswordReset mails the password reset link. The link is valid
	// for ten minutes.
	SendPasswordReset(ctx context.Context, user models.User, url string) error
}

// PaymentGateway creates hosted checkout pages.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error)
}
