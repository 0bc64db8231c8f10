package adapter

import "errors"

var (
	// Provider failures, classified by the HTTP status of the response.
	ErrProviderRejected     = errors.New("provider rejected the request")
	ErrProviderUnauthorized = errors.New("provider refused the credentials")
	ErrProviderRateLimited  = errors.New("provider rate limit exceeded")
	ErrProviderUnavailable  = errors.New("provider unavailable")

	// ErrMailNotSent wraps every failure to deliver an email.
	ErrMailNotSent = errors.New("email was not sent")

	// ErrUnknownMailProvider is returned for an unsupported mail provider.
	ErrUnknownMailProvider = errors.New("unknown mail provider")

	// ErrPaymentsNotConfigured is returned by the payment gateway when no
	// secret key is configured.
	ErrPaymentsNotConfigured = errors.New("payments are not configured")
)
