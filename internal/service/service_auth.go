package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tours/internal/adapter"
	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
	"github.com/golang-jwt/jwt/v5"
)

// resetTokenTTL bounds the validity of an emailed password reset token.
const resetTokenTTL = 10 * time.Minute

// authService is the concrete implementation of AuthService.
// It handles account creation, credential verification, JWT token
// lifecycle and password resets using a UserRepository for persistence and
// bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer delivers the welcome and password reset emails.
	mailer adapter.Mailer

	validator validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, mailer adapter.Mailer, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		mailer:         mailer,
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}
}

// Signup creates a new account with the "user" role.
//
// A failure to send the welcome email is logged and does not fail the
// signup.
func (a *authService) Signup(ctx context.Context, req models.SignupRequest, accountURL string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Signup").Msg("error hashing password")
		return models.User{}, err
	}

	user := models.NewUser()
	user.Name = req.Name
	user.Email = req.Email
	user.Password = hash

	created, err := a.userRepository.Create(ctx, user)
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	if err = a.mailer.SendWelcome(ctx, created, accountURL); err != nil {
		log.Warn().Err(err).Str("user_id", created.ID).Msg("welcome email was not sent")
	}

	return created, nil
}

// Login authenticates an existing user by email and password.
//
// An unknown email and a wrong password yield the same error so that the
// response does not reveal which accounts exist.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		return models.User{}, app.Wrap(ErrMissingCredentials, app.MsgMissingCredentials)
	}

	user, err := a.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, app.Wrap(ErrIncorrectCredentials, app.MsgIncorrectCredentials)
		}
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	ok, err := utils.CheckPassword(user.Password, req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("user_id", user.ID).Msg("error comparing password")
		return models.User{}, err
	}
	if !ok {
		return models.User{}, app.Wrap(ErrIncorrectCredentials, app.MsgIncorrectCredentials)
	}

	return user, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Authenticate validates tokenString and loads its user.
//
// It fails when the token is malformed, expired or signed with another key,
// when the user was deleted or deactivated, and when the password was
// changed after the token was issued.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.User{}, app.Wrap(ErrTokenExpired, app.MsgTokenExpired)
		}
		return models.User{}, app.Wrap(ErrTokenIsExpiredOrInvalid, app.MsgInvalidToken)
	}

	user, err := a.userRepository.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, app.Wrap(ErrUserNoLongerExists, app.MsgUserNoLongerExists)
		}
		return models.User{}, err
	}

	if user.ChangedPasswordAfter(token.IssuedTime()) {
		return models.User{}, app.Wrap(ErrPasswordChanged, app.MsgPasswordChanged)
	}

	return user, nil
}

// ForgotPassword stores the hash of a fresh reset token and emails the raw
// token. When the email cannot be sent the stored token is cleared again.
func (a *authService) ForgotPassword(ctx context.Context, email string, resetURL func(token string) string) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return app.Wrap(ErrNoUserWithEmail, app.MsgNoUserWithEmail)
		}
		return err
	}

	raw, hashed, err := utils.NewResetToken()
	if err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Msg("error generating reset token")
		return err
	}
	expires := a.now().Add(resetTokenTTL)

	if err = a.userRepository.SetResetToken(ctx, user.ID, &hashed, &expires); err != nil {
		return err
	}

	if err = a.mailer.SendPasswordReset(ctx, user, resetURL(raw)); err != nil {
		log.Err(err).Str("func", "*authService.ForgotPassword").Str("user_id", user.ID).Msg("reset email was not sent, clearing token")
		if clearErr := a.userRepository.SetResetToken(ctx, user.ID, nil, nil); clearErr != nil {
			log.Err(clearErr).Str("user_id", user.ID).Msg("error clearing reset token")
		}
		return app.Wrap(ErrEmailNotSent, app.MsgEmailNotSent)
	}

	return nil
}

// ResetPassword sets a new password for the holder of a valid reset token.
func (a *authService) ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) (models.User, error) {
	user, err := a.userRepository.FindByResetToken(ctx, utils.HashResetToken(token), a.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, app.Wrap(ErrResetTokenInvalid, app.MsgResetTokenInvalid)
		}
		return models.User{}, err
	}

	if err = a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	return a.setPassword(ctx, user, req.Password)
}

// UpdatePassword changes the password of a logged-in user after checking
// the current one.
func (a *authService) UpdatePassword(ctx context.Context, userID string, req models.UpdatePasswordRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, notFound(err)
	}

	ok, err := utils.CheckPassword(user.Password, req.PasswordCurrent)
	if err != nil {
		log.Err(err).Str("func", "*authService.UpdatePassword").Str("user_id", user.ID).Msg("error comparing password")
		return models.User{}, err
	}
	if !ok {
		return models.User{}, app.Wrap(ErrWrongPassword, app.MsgWrongCurrentPassword)
	}

	return a.setPassword(ctx, user, req.Password)
}

// setPassword stores password and stamps the change one second in the past
// so that a token issued right after it stays valid.
func (a *authService) setPassword(ctx context.Context, user models.User, password string) (models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	changedAt := a.now().Add(-time.Second)
	if err = a.userRepository.SetPassword(ctx, user.ID, hash, changedAt); err != nil {
		return models.User{}, err
	}

	user.Password = hash
	user.PasswordChangedAt = &changedAt
	user.PasswordResetToken = nil
	user.PasswordResetExpires = nil

	return user, nil
}
