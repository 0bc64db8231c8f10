package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrInvalidInput is wrapped by every rule violation.
	ErrInvalidInput = errors.New("invalid input data")
)
