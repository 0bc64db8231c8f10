package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is a signed session token. UserID caches the "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`
	jwt.RegisteredClaims

	// SignedString is the compact header.payload.signature form sent in the
	// jwt cookie and the response body.
	SignedString string `json:"-"`
	UserID       string `json:"-"`
}

// IssuedTime returns the "iat" claim or the zero time when it is absent.
func (t *Token) IssuedTime() time.Time {
	if t.IssuedAt == nil {
		return time.Time{}
	}

	return t.IssuedAt.Time
}

// String returns SignedString.
func (t *Token) String() string {
	return t.SignedString
}
