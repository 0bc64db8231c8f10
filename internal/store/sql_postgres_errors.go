package store

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassificator decides whether a failed statement is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier classifies pgx errors by their SQLSTATE.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify treats anything that is not a PostgreSQL error as permanent.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}

	return ClassifyPgError(pgErr)
}

// retryableCodes are the transient SQLSTATEs: lost connections (class 08),
// rolled back transactions (class 40) and a server that is still starting.
var retryableCodes = map[string]struct{}{
	pgerrcode.ConnectionException:    {},
	pgerrcode.ConnectionDoesNotExist: {},
	pgerrcode.ConnectionFailure:      {},
	pgerrcode.TransactionRollback:    {},
	pgerrcode.SerializationFailure:   {},
	pgerrcode.DeadlockDetected:       {},
	pgerrcode.CannotConnectNow:       {},
}

// ClassifyPgError reports codes outside retryableCodes (constraint
// violations, bad input, syntax errors) as [NonRetryable].
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	if _, ok := retryableCodes[pgErr.Code]; ok {
		return Retryable
	}

	return NonRetryable
}

var (
	duplicateValue = regexp.MustCompile(`\)=\((.*)\) already exists`)
	invalidValue   = regexp.MustCompile(`: "(.*)"$`)
)

// translateError turns a driver error into one of the store sentinels.
// Constraint violations are wrapped into an [app.Error] whose message names
// the offending value; anything unknown is wrapped with fallback.
func translateError(err error, fallback error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %w", fallback, err)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		value := pgErr.ConstraintName
		if m := duplicateValue.FindStringSubmatch(pgErr.Detail); m != nil {
			value = m[1]
		}
		return app.Wrapf(ErrDuplicateKey, app.MsgDuplicateField, value)
	case pgerrcode.ForeignKeyViolation:
		return app.Wrapf(ErrReferenceNotFound, app.MsgInvalidInput, "Referenced document does not exist.")
	case pgerrcode.CheckViolation:
		return app.Wrapf(ErrInvalidInput, app.MsgInvalidInput, "Constraint "+pgErr.ConstraintName+" failed.")
	case pgerrcode.NotNullViolation:
		return app.Wrapf(ErrInvalidInput, app.MsgInvalidInput, "Please provide "+pgErr.ColumnName+".")
	case pgerrcode.InvalidTextRepresentation, pgerrcode.InvalidDatetimeFormat:
		field, value := pgErr.ColumnName, ""
		if field == "" {
			field = "value"
		}
		if m := invalidValue.FindStringSubmatch(pgErr.Message); m != nil {
			value = m[1]
		}
		return app.Wrapf(ErrInvalidValue, app.MsgInvalidValue, field, value)
	}

	return fmt.Errorf("%w: %w", fallback, err)
}
