// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import "errors"

var (
	// ErrUnknownField is returned for a filter, sort or projection on a
	// field the schema does not declare.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownOperator is returned for field[op] with an unsupported op.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrInvalidValue is returned when a value cannot be converted to the
	// kind of its field.
	ErrInvalidValue = errors.New("invalid value")

	// ErrPageOutOfRange is returned when page*limit exceeds the row offsets
	// the database accepts.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrMixedProjection is returned when fields mixes inclusions and
	// exclusions.
	ErrMixedProjection = errors.New("cannot mix field inclusion and exclusion")
)
