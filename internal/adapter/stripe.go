// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

// stripeGateway creates Checkout Sessions through the Stripe REST API.
type stripeGateway struct {
	client    *utils.HTTPClient
	secretKey string
	currency  string
	logger    *logger.Logger
}

// NewStripeGateway builds a [PaymentGateway] talking to cfg.BaseURL.
func NewStripeGateway(cfg config.Stripe, adapterCfg config.Adapter, logger *logger.Logger) (PaymentGateway, error) {
	logger.Debug().Msg("creating stripe payment gateway")

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid stripe base url: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = "usd"
	}

	return &stripeGateway{
		client:    client,
		secretKey: cfg.SecretKey,
		currency:  currency,
		logger:    logger,
	}, nil
}

// CreateCheckoutSession opens a one-item card payment for req.Tour. The
// amount is the tour price in cents.
func (s *stripeGateway) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (models.CheckoutSession, error) {
	log := logger.FromContext(ctx)

	if s.secretKey == "" {
		return models.CheckoutSession{}, ErrPaymentsNotConfigured
	}

	var session models.CheckoutSession
	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(s.secretKey, "").
		SetFormData(checkoutForm(req, s.currency)).
		SetResult(&session).
		Post("/v1/checkout/sessions")
	if err != nil {
		log.Err(err).Str("func", "*stripeGateway.CreateCheckoutSession").Msg("checkout request failed")
		return models.CheckoutSession{}, fmt.Errorf("checkout session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*stripeGateway.CreateCheckoutSession").Int("status", resp.StatusCode()).Msg("checkout rejected")
		return models.CheckoutSession{}, err
	}

	return session, nil
}

func checkoutForm(req models.CheckoutRequest, currency string) map[string]string {
	const item = "line_items[0]"

	form := map[string]string{
		"mode":                    "payment",
		"payment_method_types[0]": "card",
		"success_url":             req.SuccessURL,
		"cancel_url":              req.CancelURL,
		"customer_email":          req.CustomerEmail,
		"client_reference_id":     req.ClientRef,

		item + "[quantity]":                              "1",
		item + "[price_data][currency]":                  currency,
		item + "[price_data][unit_amount]":               strconv.FormatInt(cents(req.Tour.Price), 10),
		item + "[price_data][product_data][name]":        req.Tour.Name + " Tour",
		item + "[price_data][product_data][description]": req.Tour.Summary,
	}
	if req.ImageBaseURL != "" && req.Tour.ImageCover != "" {
		form[item+"[price_data][product_data][images][0]"] = strings.TrimRight(req.ImageBaseURL, "/") + "/" + req.Tour.ImageCover
	}

	return form
}

func cents(amount float64) int64 {
	return int64(amount*100 + 0.5)
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
