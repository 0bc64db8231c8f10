// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/internal/utils"
	sq "github.com/Masterminds/squirrel"
)

// table describes how documents of type T map onto one SQL table.
type table[T any] struct {
	name string

	// schema lists the fields clients may filter, sort and project on.
	schema query.Schema

	// columns lists every column in select order. It is a superset of the
	// schema columns and is used for single-document reads and RETURNING.
	columns []string

	// scope restricts every read, update and delete (nil means none).
	scope sq.Sqlizer

	// softDelete names a boolean column that DeleteByID clears instead of
	// removing the row.
	softDelete string

	// targets returns the scan destination of every column.
	targets func(doc *T) map[string]any

	// values returns the value of every writable column except the key and
	// created_at.
	values func(doc *T) map[string]any

	// identify assigns the id and creation time of a new document.
	identify func(doc *T, id string, createdAt time.Time)
}

func (t table[T]) key() string {
	return t.schema.Fields[t.schema.Key].Column
}

func (t table[T]) scan(row sq.RowScanner, doc *T, columns []string) error {
	targets := t.targets(doc)
	dest := make([]any, 0, len(columns))
	for _, col := range columns {
		target, ok := targets[col]
		if !ok {
			return fmt.Errorf("%w: no scan target for %s.%s", ErrScanningRow, t.name, col)
		}
		dest = append(dest, target)
	}

	return row.Scan(dest...)
}

// repository implements the generic CRUD operations over a table.
type repository[T any] struct {
	db    *DB
	table table[T]
	ids   *utils.UUIDGenerator
	now   func() time.Time
}

func newRepository[T any](db *DB, t table[T]) *repository[T] {
	return &repository[T]{
		db:    db,
		table: t,
		ids:   utils.NewUUIDGenerator(),
		now:   time.Now,
	}
}

func (r *repository[T]) returning() string {
	return "RETURNING " + strings.Join(r.table.columns, ", ")
}

func (r *repository[T]) where(id string) sq.And {
	cond := sq.And{sq.Eq{r.table.key(): id}}
	if r.table.scope != nil {
		cond = append(cond, r.table.scope)
	}

	return cond
}

// Schema returns the queryable fields of the table.
func (r *repository[T]) Schema() query.Schema {
	return r.table.schema
}

// Create inserts doc under a fresh id and returns the stored row.
func (r *repository[T]) Create(ctx context.Context, doc T) (T, error) {
	r.table.identify(&doc, r.ids.Generate(), r.now().UTC())

	values := r.table.values(&doc)
	targets := r.table.targets(&doc)
	values[r.table.key()] = targets[r.table.key()]
	values["created_at"] = targets["created_at"]

	q, args, err := psql.Insert(r.table.name).
		SetMap(values).
		Suffix(r.returning()).
		ToSql()
	if err != nil {
		return doc, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRow(ctx, "Create", q, args)
}

// FindByID returns the document with the given id.
func (r *repository[T]) FindByID(ctx context.Context, id string) (T, error) {
	return r.findOne(ctx, "FindByID", sq.Eq{r.table.key(): id})
}

// UpdateByID overwrites every writable column of the document with id.
func (r *repository[T]) UpdateByID(ctx context.Context, id string, doc T) (T, error) {
	q, args, err := psql.Update(r.table.name).
		SetMap(r.table.values(&doc)).
		Where(r.where(id)).
		Suffix(r.returning()).
		ToSql()
	if err != nil {
		return doc, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRow(ctx, "UpdateByID", q, args)
}

// DeleteByID removes the document with id and returns its last state.
// Tables with a soft-delete column are deactivated instead.
func (r *repository[T]) DeleteByID(ctx context.Context, id string) (T, error) {
	var builder sq.Sqlizer
	if r.table.softDelete != "" {
		builder = psql.Update(r.table.name).
			Set(r.table.softDelete, false).
			Where(r.where(id)).
			Suffix(r.returning())
	} else {
		builder = psql.Delete(r.table.name).
			Where(r.where(id)).
			Suffix(r.returning())
	}

	q, args, err := builder.ToSql()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRow(ctx, "DeleteByID", q, args)
}

// List returns one page of documents matching f within the optional parent
// scope. Only the projected columns are filled in.
func (r *repository[T]) List(ctx context.Context, f query.Features, scope Scope) ([]T, error) {
	base := psql.Select().From(r.table.name)
	if r.table.scope != nil {
		base = base.Where(r.table.scope)
	}
	if len(scope) > 0 {
		eq := make(sq.Eq, len(scope))
		for field, value := range scope {
			col, err := r.table.schema.Column(field)
			if err != nil {
				return nil, err
			}
			eq[col] = value
		}
		base = base.Where(eq)
	}

	builder, err := f.Apply(base, r.table.schema)
	if err != nil {
		return nil, err
	}
	columns, err := r.table.schema.SelectColumns(f)
	if err != nil {
		return nil, err
	}

	return r.queryRows(ctx, "List", builder, columns)
}

// findAll runs an arbitrary WHERE over the full column set.
func (r *repository[T]) findAll(ctx context.Context, method string, where sq.Sqlizer, orderBy ...string) ([]T, error) {
	builder := psql.Select(r.table.columns...).From(r.table.name).Where(where)
	if r.table.scope != nil {
		builder = builder.Where(r.table.scope)
	}
	if len(orderBy) > 0 {
		builder = builder.OrderBy(orderBy...)
	}

	return r.queryRows(ctx, method, builder, r.table.columns)
}

// findOne returns the first in-scope document matching where.
func (r *repository[T]) findOne(ctx context.Context, method string, where sq.Sqlizer) (T, error) {
	builder := psql.Select(r.table.columns...).From(r.table.name).Where(where)
	if r.table.scope != nil {
		builder = builder.Where(r.table.scope)
	}

	q, args, err := builder.Limit(1).ToSql()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryRow(ctx, method, q, args)
}

func (r *repository[T]) queryRow(ctx context.Context, method, q string, args []any) (T, error) {
	log := logger.FromContext(ctx)

	var doc T
	row := r.db.QueryRowContext(ctx, q, args...)
	if err := r.table.scan(row, &doc, r.table.columns); err != nil {
		err = translateError(err, ErrExecutingStatement)
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", r.funcName(method)).Msg("error querying row")
		}
		var zero T
		return zero, err
	}

	return doc, nil
}

func (r *repository[T]) queryRows(ctx context.Context, method string, builder sq.SelectBuilder, columns []string) ([]T, error) {
	log := logger.FromContext(ctx)

	q, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.queryContext(ctx, q, args...)
	if err != nil {
		log.Err(err).Str("func", r.funcName(method)).Msg("error executing query")
		return nil, translateError(err, ErrExecutingQuery)
	}
	defer rows.Close()

	docs := make([]T, 0)
	for rows.Next() {
		var doc T
		if err = r.table.scan(rows, &doc, columns); err != nil {
			log.Err(err).Str("func", r.funcName(method)).Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", r.funcName(method)).Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return docs, nil
}

// exec runs a statement and reports whether it touched any row.
func (r *repository[T]) exec(ctx context.Context, method string, builder sq.Sqlizer) (int64, error) {
	log := logger.FromContext(ctx)

	q, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		log.Err(err).Str("func", r.funcName(method)).Msg("error executing statement")
		return 0, translateError(err, ErrExecutingStatement)
	}

	return res.RowsAffected()
}

func (r *repository[T]) funcName(method string) string {
	return "*repository[" + r.table.name + "]." + method
}
