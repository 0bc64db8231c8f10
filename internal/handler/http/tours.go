package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/chi/v5"
)

// aliasTopTours rewrites the query string to the five best rated, cheapest
// tours before the list handler runs.
func aliasTopTours(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		q.Set("limit", "5")
		q.Set("sort", "-ratingsAverage,price")
		q.Set("fields", "name,price,ratingsAverage,summary,difficulty")

		r2 := r.Clone(r.Context())
		r2.URL.RawQuery = q.Encode()
		next.ServeHTTP(w, r2)
	})
}

func (h *Handler) tourStats(w http.ResponseWriter, r *http.Request) error {
	stats, err := h.services.TourService.Stats(r.Context())
	if err != nil {
		return err
	}

	return respond(w, http.StatusOK, models.Response{
		Status: models.StatusSuccess,
		Data:   map[string]any{"stats": stats},
	})
}

func (h *Handler) monthlyPlan(w http.ResponseWriter, r *http.Request) error {
	raw := chi.URLParam(r, "year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		return app.Wrapf(ErrInvalidParam, app.MsgInvalidValue, "year", raw)
	}

	plan, err := h.services.TourService.MonthlyPlan(r.Context(), year)
	if err != nil {
		return err
	}

	return respond(w, http.StatusOK, models.Response{
		Status: models.StatusSuccess,
		Data:   map[string]any{"plan": plan},
	})
}

// toursWithin serves /tours-within/{distance}/center/{latlng}/unit/{unit}.
func (h *Handler) toursWithin(w http.ResponseWriter, r *http.Request) error {
	raw := chi.URLParam(r, "distance")
	distance, err := strconv.ParseFloat(raw, 64)
	if err != nil || distance < 0 {
		return app.Wrapf(ErrInvalidParam, app.MsgInvalidValue, "distance", raw)
	}

	tours, err := h.services.TourService.Within(r.Context(), distance, chi.URLParam(r, "latlng"), chi.URLParam(r, "unit"))
	if err != nil {
		return err
	}

	return respondList(w, len(tours), tours)
}

func (h *Handler) distances(w http.ResponseWriter, r *http.Request) error {
	distances, err := h.services.TourService.Distances(r.Context(), chi.URLParam(r, "latlng"), chi.URLParam(r, "unit"))
	if err != nil {
		return err
	}

	return respondData(w, http.StatusOK, distances)
}

// setTourUserIDs defaults the tour of a review to the {tourId} route
// parameter and its author to the current user.
func setTourUserIDs(r *http.Request, review *models.Review) {
	if review.Tour.ID == "" {
		review.Tour = models.NewRef[models.TourSummary](chi.URLParam(r, paramTourID))
	}
	if review.User.ID == "" {
		review.User = models.NewRef[models.UserSummary](currentUser(r).ID)
	}
}

// checkoutSession opens a hosted payment page for {tourId}.
func (h *Handler) checkoutSession(w http.ResponseWriter, r *http.Request) error {
	session, err := h.services.BookingService.CheckoutSession(r.Context(), chi.URLParam(r, paramTourID), currentUser(r), baseURL(r))
	if err != nil {
		return err
	}

	return respond(w, http.StatusOK, models.Response{
		Status: models.StatusSuccess,
		Data:   map[string]any{"session": session},
	})
}
