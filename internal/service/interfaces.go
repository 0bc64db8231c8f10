package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/models"
)

// ResourceService is the generic CRUD surface served by the resource
// handlers.
type ResourceService[T any] interface {
	// New returns a document carrying the default field values.
	New() T
	// Schema returns the fields clients may filter, sort and project on.
	Schema() query.Schema

	FindByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, doc T) (T, error)
	// UpdateByID loads the document, lets apply overlay the changes and
	// validates the result before it is stored.
	UpdateByID(ctx context.Context, id string, apply func(*T) error) (T, error)
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, f query.Features, scope store.Scope) ([]T, error)
}

type AuthService interface {
	// Signup creates a regular user account and sends the welcome email.
	Signup(ctx context.Context, req models.SignupRequest, accountURL string) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	// Authenticate verifies a session token and returns its current user.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)

	// ForgotPassword stores a reset token for the account of email and mails
	// resetURL(token) to it.
	ForgotPassword(ctx context.Context, email string, resetURL func(token string) string) error
	ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) (models.User, error)
	UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (models.User, error)
}

type UserService interface {
	ResourceService[models.User]

	UpdateMe(ctx context.Context, userID string, req models.UpdateMeRequest) (models.User, error)
	// DeleteMe deactivates the account.
	DeleteMe(ctx context.Context, userID string) error

	// UploadPhoto stores an avatar of userID and returns its file name.
	UploadPhoto(ctx context.Context, userID, contentType string, r io.Reader, size int64) (string, error)
	OpenPhoto(ctx context.Context, name string) (io.ReadCloser, error)
}

type TourService interface {
	ResourceService[models.Tour]

	// FindBySlug returns a tour with its guides and reviews populated.
	FindBySlug(ctx context.Context, slug string) (models.Tour, error)
	Stats(ctx context.Context) ([]models.TourStats, error)
	MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	// Within returns the tours starting within distance of center.
	Within(ctx context.Context, distance float64, center, unit string) ([]models.Tour, error)
	// Distances returns the distance from center to every tour start,
	// closest first.
	Distances(ctx context.Context, center, unit string) ([]models.TourDistance, error)
}

type ReviewService interface {
	ResourceService[models.Review]
}

type BookingService interface {
	ResourceService[models.Booking]

	// CheckoutSession opens a hosted payment page for tourID. baseURL is
	// the public origin the provider redirects back to.
	CheckoutSession(ctx context.Context, tourID string, user models.User, baseURL string) (models.CheckoutSession, error)
	// CreateFromCheckout records the booking encoded in the success URL.
	CreateFromCheckout(ctx context.Context, tourID, userID string, price float64) (models.Booking, error)
	// BookedTours returns the tours userID has booked.
	BookedTours(ctx context.Context, userID string) ([]models.Tour, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
