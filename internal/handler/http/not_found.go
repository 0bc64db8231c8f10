package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/internal/app"
)

// notFound answers requests no route matches, including known paths called
// with an unsupported method.
func (h *Handler) notFound(_ http.ResponseWriter, r *http.Request) error {
	return app.Wrapf(ErrRouteNotFound, app.MsgRouteNotFound, r.URL.RequestURI())
}
