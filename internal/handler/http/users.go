package http

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/chi/v5"
)

// updateMeBody is the accepted body of PATCH /users/me. The password fields
// are decoded only to reject them.
type updateMeBody struct {
	models.UpdateMeRequest

	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm"`
}

// getMe serves the current user through the generic getOne handler.
func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) error {
	return getOne(h.services.UserService)(w, withURLParam(r, paramID, currentUser(r).ID))
}

// updateMe changes name, email and, for multipart requests, the photo of
// the current user.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	user := currentUser(r)

	var (
		body updateMeBody
		err  error
	)
	if isMultipart(r) {
		body, err = h.decodeUpdateMeForm(r, user.ID)
	} else {
		err = decodeJSON(w, r, &body)
	}
	if err != nil {
		return err
	}

	if body.Password != nil || body.PasswordConfirm != nil {
		return app.Wrap(ErrPasswordUpdateNotAllowed, app.MsgPasswordUpdateNotAllowed)
	}

	updated, err := h.services.UserService.UpdateMe(ctx, user.ID, body.UpdateMeRequest)
	if err != nil {
		return err
	}

	return respond(w, http.StatusOK, models.Response{
		Status: models.StatusSuccess,
		Data:   models.UserPayload{User: updated},
	})
}

// decodeUpdateMeForm reads name and email from a multipart form and stores
// the "photo" file, if any.
func (h *Handler) decodeUpdateMeForm(r *http.Request, userID string) (updateMeBody, error) {
	var body updateMeBody

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return body, app.Wrap(ErrBodyTooLarge, app.MsgBodyTooLarge)
		}
		return body, app.Wrap(errors.Join(ErrInvalidJSON, err), app.MsgInvalidJSON)
	}

	form := r.MultipartForm.Value
	if v, ok := form["name"]; ok && len(v) > 0 {
		body.Name = &v[0]
	}
	if v, ok := form["email"]; ok && len(v) > 0 {
		body.Email = &v[0]
	}
	if v, ok := form["password"]; ok && len(v) > 0 {
		body.Password = &v[0]
	}
	if v, ok := form["passwordConfirm"]; ok && len(v) > 0 {
		body.PasswordConfirm = &v[0]
	}
	if body.Password != nil || body.PasswordConfirm != nil {
		return body, nil
	}

	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return body, nil
	}
	if err != nil {
		return body, err
	}
	defer file.Close()

	name, err := h.services.UserService.UploadPhoto(r.Context(), userID, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		return body, err
	}
	body.Photo = &name

	return body, nil
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) error {
	if err := h.services.UserService.DeleteMe(r.Context(), currentUser(r).ID); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

// createUser points administrators at the signup route.
func (h *Handler) createUser(_ http.ResponseWriter, _ *http.Request) error {
	return app.Wrap(ErrRouteNotDefined, app.MsgUseSignup)
}

// userPhoto streams a stored avatar.
func (h *Handler) userPhoto(w http.ResponseWriter, r *http.Request) error {
	name := path.Base(chi.URLParam(r, "name"))

	rc, err := h.services.UserService.OpenPhoto(r.Context(), name)
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err = io.Copy(w, rc); err != nil {
		logger.FromRequest(r).Err(err).Str("photo", name).Msg("error streaming photo")
	}

	return nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// withURLParam returns r with the route parameter key set to value.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)

	return r
}
