package store

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

// UserSchema lists the queryable user fields. Credentials are not part of
// it, so they can be neither filtered on nor projected.
var UserSchema = query.NewSchema(
	query.F("id", "id", query.UUID),
	query.F("name", "name", query.String),
	query.F("email", "email", query.String),
	query.F("photo", "photo", query.String),
	query.F("role", "role", query.String).WithMulti(),
	query.F("createdAt", "created_at", query.Time),
)

var userTable = table[models.User]{
	name:   "users",
	schema: UserSchema,
	columns: append(UserSchema.Columns(),
		"password",
		"password_changed_at",
		"password_reset_token",
		"password_reset_expires",
		"active",
	),
	scope:      sq.Eq{"active": true},
	softDelete: "active",
	targets: func(u *models.User) map[string]any {
		return map[string]any{
			"id":                     &u.ID,
			"name":                   &u.Name,
			"email":                  &u.Email,
			"photo":                  &u.Photo,
			"role":                   &u.Role,
			"created_at":             &u.CreatedAt,
			"password":               &u.Password,
			"password_changed_at":    &u.PasswordChangedAt,
			"password_reset_token":   &u.PasswordResetToken,
			"password_reset_expires": &u.PasswordResetExpires,
			"active":                 &u.Active,
		}
	},
	values: func(u *models.User) map[string]any {
		return map[string]any{
			"name":                   u.Name,
			"email":                  strings.ToLower(u.Email),
			"photo":                  u.Photo,
			"role":                   string(u.Role),
			"password":               u.Password,
			"password_changed_at":    u.PasswordChangedAt,
			"password_reset_token":   u.PasswordResetToken,
			"password_reset_expires": u.PasswordResetExpires,
			"active":                 u.Active,
		}
	},
	identify: func(u *models.User, id string, createdAt time.Time) {
		u.ID, u.CreatedAt = id, createdAt
	},
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account lookup and credential updates against the "users"
// table. Inactive accounts are invisible to every method.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	*repository[models.User]
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		repository: newRepository(db, userTable),
		logger:     logger,
	}
}

// FindByEmail looks the user up by the lower-cased email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "FindByEmail", sq.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *userRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	return r.findAll(ctx, "FindByIDs", sq.Eq{"id": ids})
}

func (r *userRepository) FindByResetToken(ctx context.Context, hashed string, now time.Time) (models.User, error) {
	return r.findOne(ctx, "FindByResetToken", sq.And{
		sq.Eq{"password_reset_token": hashed},
		sq.Gt{"password_reset_expires": now},
	})
}

// SetPassword stores hash, stamps password_changed_at and clears any
// pending reset token.
func (r *userRepository) SetPassword(ctx context.Context, id, hash string, changedAt time.Time) error {
	n, err := r.exec(ctx, "SetPassword", psql.Update(userTable.name).
		SetMap(map[string]any{
			"password":               hash,
			"password_changed_at":    changedAt,
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		}).
		Where(r.where(id)))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) SetResetToken(ctx context.Context, id string, hashed *string, expires *time.Time) error {
	n, err := r.exec(ctx, "SetResetToken", psql.Update(userTable.name).
		SetMap(map[string]any{
			"password_reset_token":   hashed,
			"password_reset_expires": expires,
		}).
		Where(r.where(id)))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// ClearExpiredResetTokens drops reset tokens that expired at or before now
// and returns how many were dropped.
func (r *userRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, clearExpiredResetTokens, now)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredResetTokens").Msg("error executing statement")
		return 0, translateError(err, ErrExecutingStatement)
	}

	return res.RowsAffected()
}
