// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, serverURL, secretKey string) PaymentGateway {
	t.Helper()
	g, err := NewStripeGateway(
		config.Stripe{SecretKey: secretKey, BaseURL: serverURL, Currency: "USD"},
		config.Adapter{RequestTimeout: 5 * time.Second},
		logger.Nop(),
	)
	require.NoError(t, err)
	return g
}

func testCheckoutRequest() models.CheckoutRequest {
	return models.CheckoutRequest{
		Tour: models.Tour{
			ID:         "0190a9a4-0000-7000-8000-000000000001",
			Name:       "The Forest Hiker",
			Summary:    "Breathtaking hike through the Canadian Banff National Park",
			Price:      397.5,
			ImageCover: "tour-1-cover.jpg",
		},
		CustomerEmail: "laura@example.com",
		ClientRef:     "0190a9a4-0000-7000-8000-000000000001",
		SuccessURL:    "http://localhost:3000/my-tours",
		CancelURL:     "http://localhost:3000/tour/the-forest-hiker",
		ImageBaseURL:  "http://localhost:3000/img/tours/",
	}
}

func TestCreateCheckoutSession_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test", user)
		assert.Empty(t, pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "laura@example.com", r.PostForm.Get("customer_email"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "39750", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "The Forest Hiker Tour", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "http://localhost:3000/img/tours/tour-1-cover.jpg", r.PostForm.Get("line_items[0][price_data][product_data][images][0]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_123","url":"https://checkout.stripe.com/pay/cs_test_123"}`))
	}))
	defer srv.Close()

	session, err := newTestGateway(t, srv.URL, "sk_test").CreateCheckoutSession(context.Background(), testCheckoutRequest())

	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", session.URL)
}

func TestCreateCheckoutSession_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key provided"}}`))
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL, "sk_bad").CreateCheckoutSession(context.Background(), testCheckoutRequest())

	assert.ErrorIs(t, err, ErrProviderUnauthorized)
	assert.ErrorContains(t, err, "Invalid API Key provided")
}

func TestCreateCheckoutSession_NotConfigured(t *testing.T) {
	_, err := newTestGateway(t, "https://api.stripe.com", "").CreateCheckoutSession(context.Background(), testCheckoutRequest())

	assert.ErrorIs(t, err, ErrPaymentsNotConfigured)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "https://api.stripe.com/", want: "https://api.stripe.com"},
		{name: "host only", raw: "api.sendgrid.com", want: "https://api.sendgrid.com"},
		{name: "http with port", raw: " http://127.0.0.1:8080 ", want: "http://127.0.0.1:8080"},
		{name: "empty", raw: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
