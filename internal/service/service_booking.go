package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

type bookingService struct {
	*resourceService[models.Booking]

	bookingRepository store.BookingRepository
	tourRepository    store.TourRepository
	userRepository    store.UserRepository
	payments          adapter.PaymentGateway

	logger *logger.Logger
}

func NewBookingService(storages *store.Storages, payments adapter.PaymentGateway, validator validators.Validator, logger *logger.Logger) BookingService {
	s := &bookingService{
		bookingRepository: storages.BookingRepository,
		tourRepository:    storages.TourRepository,
		userRepository:    storages.UserRepository,
		payments:          payments,
		logger:            logger,
	}
	s.resourceService = newResourceService("booking", storages.BookingRepository, validator, models.NewBooking, hooks[models.Booking]{
		populate: s.populate,
	}, logger)

	return s
}

func (s *bookingService) CheckoutSession(ctx context.Context, tourID string, user models.User, baseURL string) (models.CheckoutSession, error) {
	log := logger.FromContext(ctx)

	if err := checkID(tourID); err != nil {
		return models.CheckoutSession{}, err
	}
	tour, err := s.tourRepository.FindByID(ctx, tourID)
	if err != nil {
		return models.CheckoutSession{}, notFound(err)
	}

	baseURL = strings.TrimRight(baseURL, "/")
	success := url.Values{}
	success.Set("tour", tour.ID)
	success.Set("user", user.ID)
	success.Set("price", strconv.FormatFloat(tour.Price, 'f', -1, 64))

	session, err := s.payments.CreateCheckoutSession(ctx, models.CheckoutRequest{
		Tour:          tour,
		CustomerEmail: user.Email,
		ClientRef:     tour.ID,
		SuccessURL:    baseURL + "/?" + success.Encode(),
		CancelURL:     baseURL + "/tour/" + tour.Slug,
		ImageBaseURL:  baseURL + "/img/tours",
	})
	if err != nil {
		log.Err(err).Str("func", "*bookingService.CheckoutSession").Str("tour_id", tourID).Msg("error creating checkout session")
		return models.CheckoutSession{}, fmt.Errorf("error creating checkout session: %w", err)
	}

	return session, nil
}

func (s *bookingService) CreateFromCheckout(ctx context.Context, tourID, userID string, price float64) (models.Booking, error) {
	booking := models.NewBooking()
	booking.Tour = models.NewRef[models.TourSummary](tourID)
	booking.User = models.NewRef[models.UserSummary](userID)
	booking.Price = price

	return s.Create(ctx, booking)
}

func (s *bookingService) BookedTours(ctx context.Context, userID string) ([]models.Tour, error) {
	bookings, err := s.bookingRepository.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.Tour.ID)
	}
	if len(ids) == 0 {
		return []models.Tour{}, nil
	}

	return s.tourRepository.FindByIDs(ctx, uniq(ids))
}

// populate embeds the booking user and the tour name.
func (s *bookingService) populate(ctx context.Context, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	tourIDs := make([]string, 0, len(bookings))
	userIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.Tour.ID != "" {
			tourIDs = append(tourIDs, b.Tour.ID)
		}
		if b.User.ID != "" {
			userIDs = append(userIDs, b.User.ID)
		}
	}

	tours, err := s.tourRepository.FindByIDs(ctx, uniq(tourIDs))
	if err != nil {
		return err
	}
	users, err := s.userRepository.FindByIDs(ctx, uniq(userIDs))
	if err != nil {
		return err
	}

	toursByID := make(map[string]models.Tour, len(tours))
	for _, t := range tours {
		toursByID[t.ID] = t
	}
	usersByID := make(map[string]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	for i := range bookings {
		if t, ok := toursByID[bookings[i].Tour.ID]; ok {
			bookings[i].Tour.Populate(t.AsSummary())
		}
		if u, ok := usersByID[bookings[i].User.ID]; ok {
			bookings[i].User.Populate(u.Summary())
		}
	}

	return nil
}
