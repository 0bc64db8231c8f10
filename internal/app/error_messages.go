// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants and the
// operational error type used across the go-tours server.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or rendered on error pages. Keeping them in one place
// keeps the wording consistent throughout the API and the views.
package app

const (
	// MsgSomethingWentWrong is returned for every non-operational error.
	MsgSomethingWentWrong = "Something went very wrong!"

	// MsgNoDocumentFound is returned when a document looked up by id does
	// not exist.
	MsgNoDocumentFound = "No document found with that ID"

	// MsgNoTourWithName is returned when a tour page is requested by an
	// unknown slug.
	MsgNoTourWithName = "There is no tour with that name."

	// MsgRouteNotFound is formatted with the requested URL for unknown routes.
	MsgRouteNotFound = "Can't find %s on this server!"

	// MsgDuplicateField is formatted with the duplicated value.
	MsgDuplicateField = "Duplicate field value: %s. Please use another value!"

	// MsgInvalidValue is formatted with the field name and the rejected value.
	MsgInvalidValue = "Invalid %s: %s"

	// MsgInvalidInput prefixes the list of validation failures.
	MsgInvalidInput = "Invalid input data. %s"

	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON in request body"

	// MsgBodyTooLarge is returned when a JSON body exceeds the size limit.
	MsgBodyTooLarge = "Request body is too large"

	// MsgNotLoggedIn is returned by protect when no token is presented.
	MsgNotLoggedIn = "You are not logged in! Please log in to get access."

	// MsgInvalidToken is returned when a token fails verification.
	MsgInvalidToken = "Invalid token. Please log in again!"

	// MsgTokenExpired is returned when a token is past its expiry.
	MsgTokenExpired = "Your token has expired! Please log in again."

	// MsgUserNoLongerExists is returned when the token owner is gone.
	MsgUserNoLongerExists = "The user belonging to this token no longer exists."

	// MsgPasswordChanged is returned when the password changed after the
	// token was issued.
	MsgPasswordChanged = "User recently changed password! Please log in again."

	// MsgNoPermission is returned by restrictTo.
	MsgNoPermission = "You do not have permission to perform this action"

	// MsgMissingCredentials is returned by login without email or password.
	MsgMissingCredentials = "Please provide email and password!"

	// MsgIncorrectCredentials is returned by login on a wrong email or password.
	MsgIncorrectCredentials = "Incorrect email or password"

	// MsgNoUserWithEmail is returned by forgot-password.
	MsgNoUserWithEmail = "There is no user with that email address."

	// MsgResetTokenSent is the success message of forgot-password.
	MsgResetTokenSent = "Token sent to email!"

	// MsgEmailNotSent is returned when the reset email could not be sent.
	MsgEmailNotSent = "There was an error sending the email. Try again later!"

	// MsgResetTokenInvalid is returned by reset-password.
	MsgResetTokenInvalid = "Token is invalid or has expired"

	// MsgWrongCurrentPassword is returned by update-password.
	MsgWrongCurrentPassword = "Your current password is wrong."

	// MsgPasswordUpdateNotAllowed is returned when /users/me receives a
	// password.
	MsgPasswordUpdateNotAllowed = "This route is not for password updates. Please use /update-password."

	// MsgUseSignup is returned by POST /users.
	MsgUseSignup = "This route is not defined! Please use /signup instead"

	// MsgNotAnImage is returned when an uploaded photo is not an image.
	MsgNotAnImage = "Not an image! Please upload only images."

	// MsgTooManyRequests is returned by the rate limiter.
	MsgTooManyRequests = "Too many requests from this IP, please try again in an hour!"

	// MsgUnsupportedUnit is returned by geo routes with an unknown unit.
	MsgUnsupportedUnit = "Please provide unit as mi or km."

	// MsgInvalidLatLng is returned by geo routes with a malformed center.
	MsgInvalidLatLng = "Please provide latitude and longitude in the format lat,lng."

	// MsgPageNotFound is the title of the error page for 404s.
	MsgPageNotFound = "Something went wrong!"
)
