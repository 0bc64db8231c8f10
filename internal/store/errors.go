package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNotFound is returned when the requested document does not exist or
	// is hidden by the default scope of its table (secret tours, inactive
	// users).
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey is returned when an INSERT or UPDATE violates a unique
	// constraint, e.g. a second user with the same email or a second review
	// of the same tour by the same user.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrReferenceNotFound is returned when a document references a tour or
	// user that does not exist.
	ErrReferenceNotFound = errors.New("referenced document does not exist")

	// ErrInvalidInput is returned when the database rejects a document
	// through a CHECK or NOT NULL constraint.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidValue is returned when a value cannot be converted to the
	// type of its column.
	ErrInvalidValue = errors.New("invalid value")

	// ErrRateLimited is returned by limiters when a client has used up its
	// request budget for the current window.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidPhotoName is returned when a photo name would escape the
	// photo store.
	ErrInvalidPhotoName = errors.New("invalid photo name")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
