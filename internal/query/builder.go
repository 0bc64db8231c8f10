// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
)

// apiFeatures applies Features to a select statement step by step. The
// first failing step records its error and turns the later ones into no-ops.
type apiFeatures struct {
	query    sq.SelectBuilder
	features Features
	schema   Schema
	err      error
}

// Apply restricts base by the filters, orders it, selects the projected
// columns and paginates it.
//
// base must already carry the FROM clause and any default or parent scope;
// it must not select columns itself.
func (f Features) Apply(base sq.SelectBuilder, schema Schema) (sq.SelectBuilder, error) {
	a := &apiFeatures{query: base, features: f, schema: schema}

	a.filter().
		sort().
		limitFields().
		paginate()

	return a.query, a.err
}

func (a *apiFeatures) filter() *apiFeatures {
	if a.err != nil {
		return a
	}

	for _, filter := range a.features.Filters {
		field, ok := a.schema.Field(filter.Field)
		if !ok || field.Kind == JSON {
			a.err = fmt.Errorf("%w: %s", ErrUnknownField, filter.Field)
			return a
		}

		values := make([]any, 0, len(filter.Values))
		for _, raw := range filter.Values {
			v, err := convert(filter.Field, field.Kind, raw)
			if err != nil {
				a.err = err
				return a
			}
			values = append(values, v)
		}

		if filter.Op == OpIn && !field.Multi {
			values = values[len(values)-1:]
		}
		a.query = a.query.Where(condition(field.Column, filter.Op, values))
	}

	return a
}

func condition(column string, op Op, values []any) sq.Sqlizer {
	if op == OpIn && len(values) > 1 {
		return sq.Eq{column: values}
	}

	v := values[len(values)-1]
	switch op {
	case OpGte:
		return sq.GtOrEq{column: v}
	case OpGt:
		return sq.Gt{column: v}
	case OpLte:
		return sq.LtOrEq{column: v}
	case OpLt:
		return sq.Lt{column: v}
	default:
		return sq.Eq{column: v}
	}
}

func (a *apiFeatures) sort() *apiFeatures {
	if a.err != nil {
		return a
	}

	keySorted := false
	for _, term := range a.features.Sort {
		field, ok := a.schema.Field(term.Field)
		if !ok || field.Kind == JSON {
			a.err = fmt.Errorf("%w: %s", ErrUnknownField, term.Field)
			return a
		}

		direction := " ASC"
		if term.Desc {
			direction = " DESC"
		}
		a.query = a.query.OrderBy(field.Column + direction)
		keySorted = keySorted || term.Field == a.schema.Key
	}

	if !keySorted && a.schema.Key != "" {
		a.query = a.query.OrderBy(a.schema.Fields[a.schema.Key].Column + " ASC")
	}

	return a
}

func (a *apiFeatures) limitFields() *apiFeatures {
	if a.err != nil {
		return a
	}

	cols, err := a.schema.SelectColumns(a.features)
	if err != nil {
		a.err = err
		return a
	}
	a.query = a.query.Columns(cols...)

	return a
}

func (a *apiFeatures) paginate() *apiFeatures {
	if a.err != nil {
		return a
	}

	page, limit := a.features.Page, a.features.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	skip, ok := offset(page, limit)
	if !ok {
		a.err = &ValueError{Field: "page", Value: strconv.Itoa(page), Err: ErrPageOutOfRange}
		return a
	}

	a.query = a.query.
		Limit(uint64(limit)).
		Offset(uint64(skip))

	return a
}
