package http

import (
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router: the security pipeline shared by every request,
// the /api/v1 resources and the rendered pages.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(h.securityHeaders()...)
	router.Use(withCompression)
	router.Use(middleware.RequestSize(maxUploadSize))
	router.Use(h.withGZipRequest)
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(h.withCORS())
		r.Use(h.withRateLimit)

		r.Get("/version", h.getServerVersion)
		r.Route("/v1", func(r chi.Router) {
			r.Route("/users", h.userRoutes)
			r.Route("/tours", h.tourRoutes)
			r.Route("/reviews", h.reviewRoutes)
			r.Route("/bookings", h.bookingRoutes)
		})
	})

	h.viewRoutes(router)

	router.NotFound(h.handle(h.notFound))
	router.MethodNotAllowed(h.handle(h.notFound))

	return router
}

func (h *Handler) userRoutes(r chi.Router) {
	users := h.services.UserService

	r.Post("/signup", h.handle(h.signup))
	r.Post("/login", h.handle(h.login))
	r.Get("/logout", h.handle(h.logout))
	r.Post("/forgot-password", h.handle(h.forgotPassword))
	r.Patch("/reset-password/{token}", h.handle(h.resetPassword))

	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Patch("/update-password", h.handle(h.updatePassword))
		r.Get("/me", h.handle(h.getMe))
		r.Patch("/me", h.handle(h.updateMe))
		r.Delete("/me", h.handle(h.deleteMe))

		r.Group(func(r chi.Router) {
			r.Use(h.restrictTo(models.RoleAdmin))

			r.Get("/", h.handle(getAll(users)))
			r.Post("/", h.handle(h.createUser))
			r.Get("/{id}", h.handle(getOne(users)))
			r.Patch("/{id}", h.handle(updateOne(users)))
			r.Delete("/{id}", h.handle(deleteOne(users)))
		})
	})
}

func (h *Handler) tourRoutes(r chi.Router) {
	tours := h.services.TourService
	editors := h.restrictTo(models.RoleAdmin, models.RoleLeadGuide)

	r.Route("/{tourId}/reviews", h.reviewRoutes)

	r.With(aliasTopTours).Get("/top-5-cheap", h.handle(getAll(tours)))
	r.Get("/tour-stats", h.handle(h.tourStats))
	r.With(h.protect, h.restrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide)).
		Get("/monthly-plan/{year}", h.handle(h.monthlyPlan))
	r.Get("/tours-within/{distance}/center/{latlng}/unit/{unit}", h.handle(h.toursWithin))
	r.Get("/distances/{latlng}/unit/{unit}", h.handle(h.distances))

	r.Get("/", h.handle(getAll(tours)))
	r.Get("/{id}", h.handle(getOne(tours)))
	r.With(h.protect, editors).Post("/", h.handle(createOne(tours)))
	r.With(h.protect, editors).Patch("/{id}", h.handle(updateOne(tours)))
	r.With(h.protect, editors).Delete("/{id}", h.handle(deleteOne(tours)))
}

// reviewRoutes is mounted both at /reviews and at /tours/{tourId}/reviews.
func (h *Handler) reviewRoutes(r chi.Router) {
	reviews := h.services.ReviewService

	r.Use(h.protect)

	r.Get("/", h.handle(getAll(reviews)))
	r.With(h.restrictTo(models.RoleUser)).Post("/", h.handle(createOne(reviews, setTourUserIDs)))
	r.Get("/{id}", h.handle(getOne(reviews)))
	r.With(h.restrictTo(models.RoleUser, models.RoleAdmin)).Patch("/{id}", h.handle(updateOne(reviews)))
	r.With(h.restrictTo(models.RoleUser, models.RoleAdmin)).Delete("/{id}", h.handle(deleteOne(reviews)))
}

func (h *Handler) bookingRoutes(r chi.Router) {
	bookings := h.services.BookingService

	r.Use(h.protect)

	r.Get("/checkout-session/{tourId}", h.handle(h.checkoutSession))

	r.Group(func(r chi.Router) {
		r.Use(h.restrictTo(models.RoleAdmin, models.RoleLeadGuide))

		r.Get("/", h.handle(getAll(bookings)))
		r.Post("/", h.handle(createOne(bookings)))
		r.Get("/{id}", h.handle(getOne(bookings)))
		r.Patch("/{id}", h.handle(updateOne(bookings)))
		r.Delete("/{id}", h.handle(deleteOne(bookings)))
	})
}

func (h *Handler) viewRoutes(router chi.Router) {
	router.Get("/css/*", staticFiles().ServeHTTP)
	router.Get("/img/users/{name}", h.handle(h.userPhoto))

	router.With(h.isLoggedIn).Get("/", h.handle(h.overview))
	router.With(h.isLoggedIn).Get("/tour/{slug}", h.handle(h.tourPage))
	router.With(h.isLoggedIn).Get("/login", h.handle(h.loginPage))

	router.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Get("/me", h.handle(h.accountPage))
		r.Get("/my-tours", h.handle(h.myToursPage))
		r.Post("/submit-user-data", h.handle(h.submitUserData))
	})
}
