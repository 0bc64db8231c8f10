// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself. Callers can match
// against them with [errors.Is].
var (
	// ErrNotLoggedIn is returned by protect when neither the "Authorization"
	// header nor the jwt cookie carries a token.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrForbidden is returned by restrictTo for roles outside the allowed set.
	ErrForbidden = errors.New("forbidden")

	// ErrRouteNotFound is returned for requests no route matches.
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrBodyTooLarge is returned when a request body exceeds the limit.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrPasswordUpdateNotAllowed is returned when /users/me receives a
	// password field.
	ErrPasswordUpdateNotAllowed = errors.New("password update not allowed on this route")

	// ErrRouteNotDefined is returned by POST /users.
	ErrRouteNotDefined = errors.New("route not defined")

	// ErrInvalidParam is returned for malformed path parameters.
	ErrInvalidParam = errors.New("invalid path parameter")
)
