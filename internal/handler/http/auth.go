package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) error {
	var req models.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.Signup(r.Context(), req, baseURL(r)+"/me")
	if err != nil {
		return err
	}

	return h.sendToken(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) error {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		return err
	}

	logger.FromRequest(r).Debug().Str("user_id", user.ID).Msg("user logged in")
	return h.sendToken(w, r, user, http.StatusOK)
}

// logout overwrites the session cookie with a short-lived placeholder.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookie,
		Value:    loggedOut,
		Path:     "/",
		Expires:  time.Now().Add(logoutExpires),
		HttpOnly: true,
	})

	return respond(w, http.StatusOK, models.Response{Status: models.StatusSuccess})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) error {
	var req models.ForgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	origin := baseURL(r)
	resetURL := func(token string) string {
		return origin + "/api/v1/users/reset-password/" + token
	}

	if err := h.services.AuthService.ForgotPassword(r.Context(), req.Email, resetURL); err != nil {
		return err
	}

	return respond(w, http.StatusOK, models.Response{
		Status:  models.StatusSuccess,
		Message: app.MsgResetTokenSent,
	})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) error {
	var req models.ResetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.ResetPassword(r.Context(), chi.URLParam(r, "token"), req)
	if err != nil {
		return err
	}

	return h.sendToken(w, r, user, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) error {
	var req models.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}

	user, err := h.services.AuthService.UpdatePassword(r.Context(), currentUser(r).ID, req)
	if err != nil {
		return err
	}

	return h.sendToken(w, r, user, http.StatusOK)
}

// sendToken issues a session token for user, stores it in the jwt cookie
// and returns it together with the user.
func (h *Handler) sendToken(w http.ResponseWriter, r *http.Request, user models.User, status int) error {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     jwtCookie,
		Value:    token.String(),
		Path:     "/",
		Expires:  time.Now().Add(h.app.CookieExpires),
		HttpOnly: true,
		Secure:   h.app.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	return respond(w, status, models.Response{
		Status: models.StatusSuccess,
		Token:  token.String(),
		Data:   models.UserPayload{User: user},
	})
}

// baseURL is the public origin of the request.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	return scheme + "://" + r.Host
}
