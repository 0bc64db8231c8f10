// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SignupRequest is the body of POST /users/signup.
type SignupRequest struct {
	Name            string `json:"name" validate:"required,textmax=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the body of POST /users/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the body of PATCH /users/reset-password/{token}.
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// UpdatePasswordRequest is the body of PATCH /users/update-password.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// UpdateMeRequest carries the fields a user may change on their own
// account. Any other field in the request body is ignored.
type UpdateMeRequest struct {
	Name  *string `json:"name" validate:"omitempty,textmax=100"`
	Email *string `json:"email" validate:"omitempty,email"`

	// Photo is the stored file name of a freshly uploaded avatar.
	Photo *string `json:"-"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateMeRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Photo == nil
}
