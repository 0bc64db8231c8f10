package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrNotLoggedIn:                http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrForbidden:                  http.StatusForbidden,
	ErrRouteNotFound:              http.StatusNotFound,
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrBodyTooLarge:               http.StatusRequestEntityTooLarge,
	ErrPasswordUpdateNotAllowed:   http.StatusBadRequest,
	ErrRouteNotDefined:            http.StatusInternalServerError,
	ErrInvalidParam:               http.StatusBadRequest,

	service.ErrMissingCredentials:      http.StatusBadRequest,
	service.ErrIncorrectCredentials:    http.StatusUnauthorized,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenExpired:            http.StatusUnauthorized,
	service.ErrPasswordChanged:         http.StatusUnauthorized,
	service.ErrUserNoLongerExists:      http.StatusBadRequest,
	service.ErrNoUserWithEmail:         http.StatusNotFound,
	service.ErrResetTokenInvalid:       http.StatusBadRequest,
	service.ErrEmailNotSent:            http.StatusInternalServerError,
	service.ErrNotAnImage:              http.StatusBadRequest,
	service.ErrUnsupportedUnit:         http.StatusBadRequest,
	service.ErrInvalidLatLng:           http.StatusBadRequest,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	validators.ErrInvalidInput: http.StatusBadRequest,

	query.ErrUnknownField:    http.StatusBadRequest,
	query.ErrUnknownOperator: http.StatusBadRequest,
	query.ErrInvalidValue:    http.StatusBadRequest,
	query.ErrMixedProjection: http.StatusBadRequest,

	store.ErrNotFound:          http.StatusNotFound,
	store.ErrDuplicateKey:      http.StatusConflict,
	store.ErrReferenceNotFound: http.StatusBadRequest,
	store.ErrInvalidInput:      http.StatusBadRequest,
	store.ErrInvalidValue:      http.StatusBadRequest,
	store.ErrInvalidPhotoName:  http.StatusBadRequest,
	store.ErrRateLimited:       http.StatusTooManyRequests,

	adapter.ErrPaymentsNotConfigured: http.StatusServiceUnavailable,
	adapter.ErrProviderRejected:      http.StatusBadGateway,
	adapter.ErrProviderUnauthorized:  http.StatusBadGateway,
	adapter.ErrProviderRateLimited:   http.StatusBadGateway,
	adapter.ErrProviderUnavailable:   http.StatusBadGateway,
}

// statusFromError returns the explicit status of an operational error or,
// failing that, the status mapped to the first known sentinel in err's
// chain. Everything else is a 500.
func statusFromError(err error) int {
	if appErr, ok := app.AsError(err); ok && appErr.Status != 0 {
		return appErr.Status
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
