package service

import (
	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	TourService    TourService
	ReviewService  ReviewService
	BookingService BookingService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, adapters *adapter.Adapters, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewValidator()

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, adapters.Mailer, validator, cfg.App, logger),
		UserService:    NewUserService(storages, validator, logger),
		TourService:    NewTourService(storages, validator, logger),
		ReviewService:  NewReviewService(storages, validator, logger),
		BookingService: NewBookingService(storages, adapters.Payments, validator, logger),
		AppInfoService: appInfoService,
	}, nil
}
