// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"math"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = NewSchema(
	F("id", "id", UUID),
	F("name", "name", String),
	F("difficulty", "difficulty", String).WithMulti(),
	F("price", "price", Number).WithMulti(),
	F("ratingsAverage", "ratings_average", Number).WithMulti(),
	F("duration", "duration", Integer).WithMulti(),
	F("images", "images", JSON),
	F("createdAt", "created_at", Time).WithHidden(),
)

func baseQuery() sq.SelectBuilder {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar).Select().From("tours")
}

func buildSQL(t *testing.T, raw string, whitelist ...string) (string, []any) {
	t.Helper()
	f, err := Parse(mustValues(t, raw), whitelist...)
	require.NoError(t, err)

	builder, err := f.Apply(baseQuery(), testSchema)
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	return query, args
}

func TestApply_FilterWithOperator(t *testing.T) {
	query, args := buildSQL(t, "price[gte]=500&difficulty=easy")

	assert.Contains(t, query, "WHERE difficulty = $1 AND price >= $2")
	assert.Equal(t, []any{"easy", 500.0}, args)
}

func TestApply_AllOperators(t *testing.T) {
	query, args := buildSQL(t, "duration[gt]=1&price[lte]=900&ratingsAverage[lt]=4.5")

	assert.Contains(t, query, "duration > $1")
	assert.Contains(t, query, "price <= $2")
	assert.Contains(t, query, "ratings_average < $3")
	assert.Equal(t, []any{1, 900.0, 4.5}, args)
}

func TestApply_WhitelistedRepeatBecomesIn(t *testing.T) {
	query, args := buildSQL(t, "difficulty=easy&difficulty=medium", "difficulty")

	assert.Contains(t, query, "difficulty IN ($1,$2)")
	assert.Equal(t, []any{"easy", "medium"}, args)
}

func TestApply_Sort(t *testing.T) {
	query, _ := buildSQL(t, "sort=-price,ratingsAverage")

	assert.Contains(t, query, "ORDER BY price DESC, ratings_average ASC, id ASC")
}

func TestApply_DefaultSort(t *testing.T) {
	query, _ := buildSQL(t, "")

	assert.Contains(t, query, "ORDER BY created_at DESC, id ASC")
}

func TestApply_SortByKeyHasNoExtraTiebreak(t *testing.T) {
	query, _ := buildSQL(t, "sort=-id")

	assert.Contains(t, query, "ORDER BY id DESC")
	assert.NotContains(t, query, "id ASC")
}

func TestApply_Pagination(t *testing.T) {
	query, _ := buildSQL(t, "page=2&limit=5")

	assert.Contains(t, query, "LIMIT 5 OFFSET 5")
}

func TestApply_DefaultPagination(t *testing.T) {
	query, _ := buildSQL(t, "")

	assert.Contains(t, query, "LIMIT 100 OFFSET 0")
}

func TestApply_FieldLimiting(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "all columns", raw: "", want: "SELECT id, name, difficulty, price, ratings_average, duration, images, created_at FROM tours"},
		{name: "inclusion keeps id", raw: "fields=price,name", want: "SELECT id, name, price FROM tours"},
		{name: "exclusion", raw: "fields=-images,-createdAt", want: "SELECT id, name, difficulty, price, ratings_average, duration FROM tours"},
		{name: "id cannot be excluded", raw: "fields=-id,-name", want: "SELECT id, difficulty, price, ratings_average, duration, images, created_at FROM tours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _ := buildSQL(t, tt.raw)
			assert.Contains(t, query, tt.want)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "unknown filter field", raw: "color=red", wantErr: ErrUnknownField},
		{name: "json field filter", raw: "images=a.jpg", wantErr: ErrUnknownField},
		{name: "unknown sort field", raw: "sort=color", wantErr: ErrUnknownField},
		{name: "unknown projection", raw: "fields=color", wantErr: ErrUnknownField},
		{name: "cast error", raw: "price=cheap", wantErr: ErrInvalidValue},
		{name: "bad uuid", raw: "id=42", wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(mustValues(t, tt.raw))
			require.NoError(t, err)

			_, err = f.Apply(baseQuery(), testSchema)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApply_CastErrorMessage(t *testing.T) {
	f, err := Parse(mustValues(t, "price=cheap"))
	require.NoError(t, err)

	_, err = f.Apply(baseQuery(), testSchema)

	var valueErr *ValueError
	require.ErrorAs(t, err, &valueErr)
	assert.Equal(t, "price", valueErr.Field)
	assert.Equal(t, "cheap", valueErr.Value)
}

func TestApply_KeepsBaseScope(t *testing.T) {
	f, err := Parse(mustValues(t, "price[lt]=1000"))
	require.NoError(t, err)

	base := baseQuery().Where(sq.Eq{"secret_tour": false})
	builder, err := f.Apply(base, testSchema)
	require.NoError(t, err)

	query, args, err := builder.ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "WHERE secret_tour = $1 AND price < $2")
	assert.Equal(t, []any{false, 1000.0}, args)
}

func TestSchema_Whitelist(t *testing.T) {
	assert.Equal(t, []string{"difficulty", "price", "ratingsAverage", "duration"}, testSchema.Whitelist())
}

func TestApply_RejectsOverflowingOffset(t *testing.T) {
	f := Features{Page: math.MaxInt64, Limit: 100}

	_, err := f.Apply(baseQuery(), testSchema)

	require.ErrorIs(t, err, ErrPageOutOfRange)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 0, f.Offset())
}
