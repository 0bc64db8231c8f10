package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
)

// appHandler is a route handler that reports failures by returning them.
// The error is rendered by [Handler.handle].
type appHandler func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to [http.HandlerFunc], forwarding any returned error to
// the centralized formatter.
func (h *Handler) handle(fn appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.writeError(w, r, err)
		}
	}
}

// writeError answers API routes with a JSON envelope and everything else
// with the error page.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	message := errorMessage(err, status)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("operational error")
	}

	if !isAPIRequest(r) {
		h.renderError(w, r, status, message)
		return
	}

	resp := models.Response{Status: statusText(status), Message: message}
	if !h.app.IsProduction() {
		resp.Error = err.Error()
	}

	if _, werr := utils.WriteJSON(w, resp, status); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}

// errorMessage returns the text shown to the client. Unknown server
// failures never leak their details.
func errorMessage(err error, status int) string {
	if appErr, ok := app.AsError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	if status >= http.StatusInternalServerError {
		return app.MsgSomethingWentWrong
	}

	return err.Error()
}

func statusText(status int) string {
	if status >= http.StatusInternalServerError {
		return models.StatusError
	}

	return models.StatusFail
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api")
}

// respond writes a JSON envelope.
func respond(w http.ResponseWriter, status int, resp models.Response) error {
	if _, err := utils.WriteJSON(w, resp, status); err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}

	return nil
}

// respondData writes {status: "success", data: {data: v}}.
func respondData(w http.ResponseWriter, status int, v any) error {
	return respond(w, status, models.Response{
		Status: models.StatusSuccess,
		Data:   models.DataPayload{Data: v},
	})
}

// respondList is respondData with the number of results.
func respondList(w http.ResponseWriter, n int, v any) error {
	return respond(w, http.StatusOK, models.Response{
		Status:  models.StatusSuccess,
		Results: &n,
		Data:    models.DataPayload{Data: v},
	})
}

var htmlEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// credentialFields are compared and hashed as typed and never escaped.
var credentialFields = map[string]bool{
	"password":        true,
	"passwordConfirm": true,
	"passwordCurrent": true,
}

// decodeJSON reads at most maxBodySize bytes of JSON into dst. String
// values other than credentials have their angle brackets escaped before
// dst sees them. An empty
// body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return app.Wrap(ErrBodyTooLarge, app.MsgBodyTooLarge)
		}
		return fmt.Errorf("error reading request body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}

	var raw any
	if err = json.Unmarshal(body, &raw); err != nil {
		return app.Wrap(fmt.Errorf("%w: %w", ErrInvalidJSON, err), app.MsgInvalidJSON)
	}

	if body, err = json.Marshal(sanitize(raw)); err != nil {
		return fmt.Errorf("error re-encoding request body: %w", err)
	}
	if err = json.Unmarshal(body, dst); err != nil {
		return app.Wrap(fmt.Errorf("%w: %w", ErrInvalidJSON, err), app.MsgInvalidJSON)
	}

	return nil
}

func sanitize(v any) any {
	switch v := v.(type) {
	case string:
		return htmlEscaper.Replace(v)
	case []any:
		for i := range v {
			v[i] = sanitize(v[i])
		}
	case map[string]any:
		for k := range v {
			if credentialFields[k] {
				continue
			}
			v[k] = sanitize(v[k])
		}
	}

	return v
}
