// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks documents and request bodies before they reach
// the store.
//
// Rules live in the `validate` struct tags of the models package. Every
// violation wraps [ErrInvalidInput] and carries an "Invalid input data."
// message listing the offending JSON fields, so the HTTP layer answers it
// with 400.
package validators

import "context"

// Validator checks the tags of a struct. Passing field names limits the
// check to those fields, which is how partial updates of a single column
// are validated.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
