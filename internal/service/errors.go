package service

import "errors"

var (
	ErrMissingCredentials   = errors.New("missing credentials")
	ErrIncorrectCredentials = errors.New("incorrect email or password")
	ErrWrongPassword        = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenExpired            = errors.New("token is expired")
	ErrUserNoLongerExists      = errors.New("user no longer exists")
	ErrPasswordChanged         = errors.New("password changed after token was issued")

	ErrNoUserWithEmail   = errors.New("no user with that email")
	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")
	ErrEmailNotSent      = errors.New("email not sent")

	ErrNotAnImage      = errors.New("not an image")
	ErrUnsupportedUnit = errors.New("unsupported distance unit")
	ErrInvalidLatLng   = errors.New("invalid lat,lng")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
