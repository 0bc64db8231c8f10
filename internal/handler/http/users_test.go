package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMe_JSON(t *testing.T) {
	svcs := newTestServices(models.RoleUser)

	var got models.UpdateMeRequest
	svcs.users.updateMeFn = func(_ context.Context, userID string, req models.UpdateMeRequest) (models.User, error) {
		assert.Equal(t, testUserID, userID)
		got = req
		return models.User{ID: userID, Name: *req.Name, Role: models.RoleUser}, nil
	}

	rec := serve(newTestHandler(t, svcs, nil, nil), http.MethodPatch, "/api/v1/users/me", `{"name":"Jonas S.","role":"admin"}`, authorized)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, got.Name)
	assert.Equal(t, "Jonas S.", *got.Name)
	assert.Nil(t, got.Email)

	user := decodeResponse(t, rec)["data"].(map[string]any)["user"].(map[string]any)
	assert.Equal(t, "Jonas S.", user["name"])
	assert.Equal(t, "user", user["role"])
}

func TestUpdateMe_RejectsPassword(t *testing.T) {
	svcs := newTestServices(models.RoleUser)
	svcs.users.updateMeFn = func(context.Context, string, models.UpdateMeRequest) (models.User, error) {
		t.Fatal("UpdateMe must not be reached")
		return models.User{}, nil
	}

	rec := serve(newTestHandler(t, svcs, nil, nil), http.MethodPatch, "/api/v1/users/me", `{"password":"newpass123"}`, authorized)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgPasswordUpdateNotAllowed, decodeResponse(t, rec)["message"])
}

func multipartBody(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "me.jpg")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUpdateMe_Multipart(t *testing.T) {
	svcs := newTestServices(models.RoleUser)

	var uploaded []byte
	svcs.users.uploadPhotoFn = func(_ context.Context, userID, _ string, r io.Reader, size int64) (string, error) {
		b, err := io.ReadAll(r)
		require.NoError(t, err)
		uploaded = b
		assert.EqualValues(t, len(b), size)
		return "user-" + userID + ".jpeg", nil
	}
	var got models.UpdateMeRequest
	svcs.users.updateMeFn = func(_ context.Context, userID string, req models.UpdateMeRequest) (models.User, error) {
		got = req
		return models.User{ID: userID, Photo: *req.Photo}, nil
	}
	h := newTestHandler(t, svcs, nil, nil)

	body, contentType := multipartBody(t, map[string]string{"name": "Jonas"}, []byte("\xff\xd8\xff fake jpeg"))
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", authorized["Authorization"])
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []byte("\xff\xd8\xff fake jpeg"), uploaded)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Jonas", *got.Name)
	require.NotNil(t, got.Photo)
	assert.Equal(t, "user-"+testUserID+".jpeg", *got.Photo)
}

func TestUpdateMe_MultipartNotAnImage(t *testing.T) {
	svcs := newTestServices(models.RoleUser)
	svcs.users.uploadPhotoFn = func(context.Context, string, string, io.Reader, int64) (string, error) {
		return "", app.Wrap(service.ErrNotAnImage, app.MsgNotAnImage)
	}
	h := newTestHandler(t, svcs, nil, nil)

	body, contentType := multipartBody(t, nil, []byte("plain text"))
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", authorized["Authorization"])
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, app.MsgNotAnImage, decodeResponse(t, rec)["message"])
}

func TestDeleteMe(t *testing.T) {
	svcs := newTestServices(models.RoleUser)

	var deactivated string
	svcs.users.deleteMeFn = func(_ context.Context, userID string) error {
		deactivated = userID
		return nil
	}

	rec := serve(newTestHandler(t, svcs, nil, nil), http.MethodDelete, "/api/v1/users/me", "", authorized)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testUserID, deactivated)
}

func TestCreateUser_PointsToSignup(t *testing.T) {
	svcs := newTestServices(models.RoleAdmin)

	rec := serve(newTestHandler(t, svcs, nil, nil), http.MethodPost, "/api/v1/users", `{"name":"x"}`, authorized)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, app.MsgUseSignup, body["message"])
}

func TestUsers_AdminOnly(t *testing.T) {
	svcs := newTestServices(models.RoleLeadGuide)

	rec := serve(newTestHandler(t, svcs, nil, nil), http.MethodGet, "/api/v1/users", "", authorized)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserPhoto(t *testing.T) {
	svcs := newTestServices(models.RoleUser)
	svcs.users.openPhotoFn = func(_ context.Context, name string) (io.ReadCloser, error) {
		if name != "default.jpg" {
			return nil, app.Wrap(store.ErrNotFound, app.MsgNoDocumentFound)
		}
		return io.NopCloser(strings.NewReader("jpeg bytes")), nil
	}
	h := newTestHandler(t, svcs, nil, nil)

	rec := serve(h, http.MethodGet, "/img/users/default.jpg", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg bytes", rec.Body.String())

	rec = serve(h, http.MethodGet, "/img/users/missing.jpg", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
