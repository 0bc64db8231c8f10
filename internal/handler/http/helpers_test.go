package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/require"
)

const (
	testTourID   = "0190a1b2-0000-7000-8000-000000000001"
	testUserID   = "0190a1b2-0000-7000-8000-000000000002"
	testReviewID = "0190a1b2-0000-7000-8000-000000000003"
	validToken   = "valid-token"
)

var errInvalidTestToken = app.Wrap(service.ErrTokenIsExpiredOrInvalid, app.MsgInvalidToken)

// ─────────────────────────────────────────────
// Fake services
// ─────────────────────────────────────────────

// fakeResource implements service.ResourceService[T]. Unset function
// fields return zero values.
type fakeResource[T any] struct {
	schema query.Schema
	newFn  func() T

	findByIDFn func(ctx context.Context, id string) (T, error)
	createFn   func(ctx context.Context, doc T) (T, error)
	updateFn   func(ctx context.Context, id string, apply func(*T) error) (T, error)
	deleteFn   func(ctx context.Context, id string) error
	listFn     func(ctx context.Context, f query.Features, scope store.Scope) ([]T, error)
}

func (f *fakeResource[T]) New() T {
	if f.newFn != nil {
		return f.newFn()
	}
	var zero T
	return zero
}

func (f *fakeResource[T]) Schema() query.Schema { return f.schema }

func (f *fakeResource[T]) FindByID(ctx context.Context, id string) (T, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	var zero T
	return zero, nil
}

func (f *fakeResource[T]) Create(ctx context.Context, doc T) (T, error) {
	if f.createFn != nil {
		return f.createFn(ctx, doc)
	}
	return doc, nil
}

func (f *fakeResource[T]) UpdateByID(ctx context.Context, id string, apply func(*T) error) (T, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, apply)
	}
	var doc T
	err := apply(&doc)
	return doc, err
}

func (f *fakeResource[T]) DeleteByID(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeResource[T]) List(ctx context.Context, q query.Features, scope store.Scope) ([]T, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q, scope)
	}
	return nil, nil
}

type fakeTourService struct {
	*fakeResource[models.Tour]

	findBySlugFn  func(ctx context.Context, slug string) (models.Tour, error)
	statsFn       func(ctx context.Context) ([]models.TourStats, error)
	monthlyPlanFn func(ctx context.Context, year int) ([]models.MonthlyPlan, error)
	withinFn      func(ctx context.Context, distance float64, center, unit string) ([]models.Tour, error)
	distancesFn   func(ctx context.Context, center, unit string) ([]models.TourDistance, error)
}

func newFakeTourService() *fakeTourService {
	return &fakeTourService{fakeResource: &fakeResource[models.Tour]{schema: store.TourSchema, newFn: models.NewTour}}
}

func (f *fakeTourService) FindBySlug(ctx context.Context, slug string) (models.Tour, error) {
	return f.findBySlugFn(ctx, slug)
}

func (f *fakeTourService) Stats(ctx context.Context) ([]models.TourStats, error) {
	return f.statsFn(ctx)
}

func (f *fakeTourService) MonthlyPlan(ctx context.Context, year int) ([]models.MonthlyPlan, error) {
	return f.monthlyPlanFn(ctx, year)
}

func (f *fakeTourService) Within(ctx context.Context, distance float64, center, unit string) ([]models.Tour, error) {
	return f.withinFn(ctx, distance, center, unit)
}

func (f *fakeTourService) Distances(ctx context.Context, center, unit string) ([]models.TourDistance, error) {
	return f.distancesFn(ctx, center, unit)
}

type fakeUserService struct {
	*fakeResource[models.User]

	updateMeFn    func(ctx context.Context, userID string, req models.UpdateMeRequest) (models.User, error)
	deleteMeFn    func(ctx context.Context, userID string) error
	uploadPhotoFn func(ctx context.Context, userID, contentType string, r io.Reader, size int64) (string, error)
	openPhotoFn   func(ctx context.Context, name string) (io.ReadCloser, error)
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{fakeResource: &fakeResource[models.User]{schema: store.UserSchema, newFn: models.NewUser}}
}

func (f *fakeUserService) UpdateMe(ctx context.Context, userID string, req models.UpdateMeRequest) (models.User, error) {
	return f.updateMeFn(ctx, userID, req)
}

func (f *fakeUserService) DeleteMe(ctx context.Context, userID string) error {
	return f.deleteMeFn(ctx, userID)
}

func (f *fakeUserService) UploadPhoto(ctx context.Context, userID, contentType string, r io.Reader, size int64) (string, error) {
	return f.uploadPhotoFn(ctx, userID, contentType, r, size)
}

func (f *fakeUserService) OpenPhoto(ctx context.Context, name string) (io.ReadCloser, error) {
	return f.openPhotoFn(ctx, name)
}

type fakeReviewService struct {
	*fakeResource[models.Review]
}

func newFakeReviewService() *fakeReviewService {
	return &fakeReviewService{fakeResource: &fakeResource[models.Review]{schema: store.ReviewSchema}}
}

type fakeBookingService struct {
	*fakeResource[models.Booking]

	checkoutSessionFn    func(ctx context.Context, tourID string, user models.User, baseURL string) (models.CheckoutSession, error)
	createFromCheckoutFn func(ctx context.Context, tourID, userID string, price float64) (models.Booking, error)
	bookedToursFn        func(ctx context.Context, userID string) ([]models.Tour, error)
}

func newFakeBookingService() *fakeBookingService {
	return &fakeBookingService{fakeResource: &fakeResource[models.Booking]{schema: store.BookingSchema, newFn: models.NewBooking}}
}

func (f *fakeBookingService) CheckoutSession(ctx context.Context, tourID string, user models.User, baseURL string) (models.CheckoutSession, error) {
	return f.checkoutSessionFn(ctx, tourID, user, baseURL)
}

func (f *fakeBookingService) CreateFromCheckout(ctx context.Context, tourID, userID string, price float64) (models.Booking, error) {
	return f.createFromCheckoutFn(ctx, tourID, userID, price)
}

func (f *fakeBookingService) BookedTours(ctx context.Context, userID string) ([]models.Tour, error) {
	return f.bookedToursFn(ctx, userID)
}

// fakeAuthService accepts validToken as the token of its user.
type fakeAuthService struct {
	user models.User

	signupFn         func(ctx context.Context, req models.SignupRequest, accountURL string) (models.User, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.User, error)
	forgotPasswordFn func(ctx context.Context, email string, resetURL func(string) string) error
	resetPasswordFn  func(ctx context.Context, token string, req models.ResetPasswordRequest) (models.User, error)
	updatePasswordFn func(ctx context.Context, userID string, req models.UpdatePasswordRequest) (models.User, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, req models.SignupRequest, accountURL string) (models.User, error) {
	return f.signupFn(ctx, req, accountURL)
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return f.loginFn(ctx, req)
}

func (f *fakeAuthService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	return models.Token{SignedString: "token-of-" + user.ID, UserID: user.ID}, nil
}

func (f *fakeAuthService) Authenticate(_ context.Context, tokenString string) (models.User, error) {
	if tokenString != validToken {
		return models.User{}, errInvalidTestToken
	}
	return f.user, nil
}

func (f *fakeAuthService) ForgotPassword(ctx context.Context, email string, resetURL func(string) string) error {
	return f.forgotPasswordFn(ctx, email, resetURL)
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) (models.User, error) {
	return f.resetPasswordFn(ctx, token, req)
}

func (f *fakeAuthService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (models.User, error) {
	return f.updatePasswordFn(ctx, userID, req)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string {
	return f.version
}

// fakeLimiter rejects every request after the first limit ones.
type fakeLimiter struct {
	limit int
	calls int
	err   error
}

func (f *fakeLimiter) Allow(_ context.Context, _ string) (int, time.Duration, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	f.calls++
	if f.calls > f.limit {
		return 0, time.Hour, store.ErrRateLimited
	}
	return f.limit - f.calls, time.Hour, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// testServices bundles the fakes behind a *service.Services.
type testServices struct {
	auth     *fakeAuthService
	users    *fakeUserService
	tours    *fakeTourService
	reviews  *fakeReviewService
	bookings *fakeBookingService
}

func newTestServices(role models.Role) *testServices {
	return &testServices{
		auth:     &fakeAuthService{user: models.User{ID: testUserID, Name: "Jonas Schmedtmann", Email: "jonas@example.com", Role: role, Photo: models.DefaultUserPhoto}},
		users:    newFakeUserService(),
		tours:    newFakeTourService(),
		reviews:  newFakeReviewService(),
		bookings: newFakeBookingService(),
	}
}

func (s *testServices) services() *service.Services {
	return &service.Services{
		AuthService:    s.auth,
		UserService:    s.users,
		TourService:    s.tours,
		ReviewService:  s.reviews,
		BookingService: s.bookings,
		AppInfoService: &fakeAppInfoService{version: "1.0.0"},
	}
}

func newTestConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App:    config.App{Env: config.EnvDevelopment, CookieExpires: 90 * 24 * time.Hour},
		Server: config.Server{HTTPAddress: ":8080", RateLimit: 100},
	}
}

// newTestHandler builds a Handler over svcs with a no-op logger.
func newTestHandler(t *testing.T, svcs *testServices, limiter store.RateLimiter, cfg *config.StructuredConfig) *Handler {
	t.Helper()
	if cfg == nil {
		cfg = newTestConfig()
	}
	h, err := NewHandler(svcs.services(), limiter, cfg, logger.Nop())
	require.NoError(t, err)
	return h
}

// serve sends a request through the full router.
func serve(h *Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

// authorized is the header of a logged-in request.
var authorized = map[string]string{"Authorization": "Bearer " + validToken}

// decodeResponse unmarshals the JSON envelope of rec.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

// dataOf returns body.data.data.
func dataOf(t *testing.T, body map[string]any) any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "data is not an object: %v", body["data"])
	return data["data"]
}
