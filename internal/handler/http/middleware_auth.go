package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

// protect is an HTTP middleware that enforces JWT-based authentication.
//
// The token is taken from the "Authorization: Bearer <token>" header or,
// failing that, from the jwt cookie. It is verified by
// [service.AuthService.Authenticate], which also rejects tokens of deleted
// users and tokens issued before the last password change. On success the
// current user is stored in the request context under [utils.UserCtxKey].
func (h *Handler) protect(next http.Handler) http.Handler {
	return h.handle(func(w http.ResponseWriter, r *http.Request) error {
		tokenString, err := tokenFromRequest(r)
		if err != nil {
			return err
		}

		user, err := h.services.AuthService.Authenticate(r.Context(), tokenString)
		if err != nil {
			return err
		}

		logger.FromRequest(r).Debug().Str("user_id", user.ID).Msg("request authenticated")
		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
		return nil
	})
}

// isLoggedIn stores the user of a valid jwt cookie in the context so that
// pages can render the account menu. It never rejects a request.
func (h *Handler) isLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(jwtCookie)
		if err != nil || cookie.Value == "" || cookie.Value == loggedOut {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.services.AuthService.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
	})
}

// restrictTo lets through only users whose role is one of roles. It must
// run after protect.
func (h *Handler) restrictTo(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return h.handle(func(w http.ResponseWriter, r *http.Request) error {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok || !user.HasRole(roles...) {
				return app.Wrap(ErrForbidden, app.MsgNoPermission)
			}

			next.ServeHTTP(w, r)
			return nil
		})
	}
}

// tokenFromRequest returns the bearer token of the "Authorization" header
// or the value of the jwt cookie.
func tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, err := utils.ParseBearerToken(header)
		if err != nil {
			return "", app.Wrap(ErrInvalidAuthorizationHeader, app.MsgNotLoggedIn)
		}
		return token, nil
	}

	if cookie, err := r.Cookie(jwtCookie); err == nil && cookie.Value != "" && cookie.Value != loggedOut {
		return cookie.Value, nil
	}

	return "", app.Wrap(ErrNotLoggedIn, app.MsgNotLoggedIn)
}

// currentUser returns the user stored by protect.
func currentUser(r *http.Request) models.User {
	user, _ := utils.GetUserFromContext(r.Context())
	return user
}
