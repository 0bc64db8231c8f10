// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response statuses. 4xx responses are a failure of the client, 5xx an
// error of the server.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Response is the JSON envelope of every API answer.
type Response struct {
	Status  string `json:"status"`
	Results *int   `json:"results,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`

	// Error carries the raw error text in development.
	Error string `json:"error,omitempty"`
}

// DataPayload wraps a single document or a list of documents.
type DataPayload struct {
	Data any `json:"data"`
}

// UserPayload wraps the user returned by authentication endpoints.
type UserPayload struct {
	User any `json:"user"`
}
