package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tours/internal/config"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/migrations"
	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// psql is the statement builder shared by every repository.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	// construct a DB struct
	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	return db, nil
}

// Migrate applies the embedded goose migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// Ping reports whether the database still answers. It backs the health
// probe worker.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Retryable reports whether a failed statement may succeed when repeated.
func (db *DB) Retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}

	return db.errorClassificator.Classify(err) == Retryable
}

// queryAttempts bounds how often a read is repeated after a transient error.
const queryAttempts = 3

// queryRetryBackoff is multiplied by the attempt number between reads.
var queryRetryBackoff = 100 * time.Millisecond

// queryContext runs a read-only query, repeating it while the failure is
// transient (lost connection, deadlock, serialization failure).
func (db *DB) queryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	var (
		rows *sql.Rows
		err  error
	)
	for attempt := 1; ; attempt++ {
		rows, err = db.QueryContext(ctx, q, args...)
		if err == nil || attempt == queryAttempts || !db.Retryable(err) {
			return rows, err
		}

		logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt).Msg("retrying query after transient error")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * queryRetryBackoff):
		}
	}
}
