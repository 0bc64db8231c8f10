// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization role of a [User].
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// DefaultUserPhoto is assigned to accounts that never uploaded a photo.
const DefaultUserPhoto = "default.jpg"

// User represents an account. Credential and lifecycle fields are never
// serialised to JSON.
type User struct {
	// ID is the UUIDv7 identifier of the user.
	ID string `json:"id"`

	// Name is the display name shown on reviews and guide cards.
	Name string `json:"name" validate:"required,textmax=100"`

	// Email is unique across users and always stored lower-cased.
	Email string `json:"email" validate:"required,email"`

	// Photo is the file name of the avatar inside the photo store.
	Photo string `json:"photo"`

	// Role drives restrictTo checks.
	Role Role `json:"role" validate:"required,oneof=user guide lead-guide admin"`

	// Password is the bcrypt hash of the user's password.
	Password string `json:"-"`

	// PasswordChangedAt is compared with a token's iat claim.
	PasswordChangedAt *time.Time `json:"-"`

	// PasswordResetToken is the sha256 hex digest of the emailed reset token.
	PasswordResetToken *string `json:"-"`

	// PasswordResetExpires bounds the validity of PasswordResetToken.
	PasswordResetExpires *time.Time `json:"-"`

	// Active is false for soft-deleted accounts.
	Active bool `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewUser returns a user carrying the default field values.
func NewUser() User {
	return User{
		Role:   RoleUser,
		Photo:  DefaultUserPhoto,
		Active: true,
	}
}

// ChangedPasswordAfter reports whether the password was changed after the
// moment a token was issued.
func (u User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}

	return u.PasswordChangedAt.Truncate(time.Second).After(issuedAt)
}

// HasRole reports whether the user's role is one of roles.
func (u User) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}

	return false
}

// Summary returns the public subset of the user used when it is embedded
// into other documents.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
		Role:  u.Role,
	}
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Photo string `json:"photo"`
	Role  Role   `json:"role,omitempty"`
}
