// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustValues(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return v
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse(url.Values{})
	require.NoError(t, err)

	assert.Empty(t, f.Filters)
	assert.Equal(t, []SortField{{Field: "createdAt", Desc: true}}, f.Sort)
	assert.Nil(t, f.Fields)
	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 0, f.Offset())
}

func TestParse_FiltersAndOperators(t *testing.T) {
	f, err := Parse(mustValues(t, "price[gte]=500&difficulty=easy&page=2&sort=price&limit=5&fields=name"))
	require.NoError(t, err)

	require.Len(t, f.Filters, 2)
	assert.Equal(t, Filter{Field: "difficulty", Op: OpEq, Values: []string{"easy"}}, f.Filters[0])
	assert.Equal(t, Filter{Field: "price", Op: OpGte, Values: []string{"500"}}, f.Filters[1])
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 5, f.Limit)
	assert.Equal(t, 5, f.Offset())
}

func TestParse_UnknownOperator(t *testing.T) {
	_, err := Parse(mustValues(t, "price[ne]=500"))
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func TestParse_ParameterPollution(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		whitelist []string
		want      Filter
	}{
		{
			name:      "whitelisted key becomes IN",
			raw:       "difficulty=easy&difficulty=medium",
			whitelist: []string{"difficulty"},
			want:      Filter{Field: "difficulty", Op: OpIn, Values: []string{"easy", "medium"}},
		},
		{
			name: "other repeated key keeps last value",
			raw:  "name=a&name=b",
			want: Filter{Field: "name", Op: OpEq, Values: []string{"b"}},
		},
		{
			name:      "repeated operator keeps last value",
			raw:       "price[lt]=100&price[lt]=200",
			whitelist: []string{"price"},
			want:      Filter{Field: "price", Op: OpLt, Values: []string{"200"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(mustValues(t, tt.raw), tt.whitelist...)
			require.NoError(t, err)
			require.Len(t, f.Filters, 1)
			assert.Equal(t, tt.want, f.Filters[0])
		})
	}
}

func TestParse_SortLastValueWins(t *testing.T) {
	f, err := Parse(mustValues(t, "sort=price&sort=-ratingsAverage,name"))
	require.NoError(t, err)

	assert.Equal(t, []SortField{
		{Field: "ratingsAverage", Desc: true},
		{Field: "name"},
	}, f.Sort)
}

func TestParse_Fields(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantFields  []string
		wantExclude bool
		wantErr     error
	}{
		{name: "inclusion", raw: "fields=name,price", wantFields: []string{"name", "price"}},
		{name: "exclusion", raw: "fields=-summary,-images", wantFields: []string{"summary", "images"}, wantExclude: true},
		{name: "star means all", raw: "fields=*"},
		{name: "mixed", raw: "fields=name,-price", wantErr: ErrMixedProjection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(mustValues(t, tt.raw))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFields, f.Fields)
			assert.Equal(t, tt.wantExclude, f.Exclude)
		})
	}
}

func TestParse_Pagination(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantPage  int
		wantLimit int
		wantErr   bool
	}{
		{name: "zero falls back", raw: "page=0&limit=0", wantPage: DefaultPage, wantLimit: DefaultLimit},
		{name: "negative falls back", raw: "page=-3", wantPage: DefaultPage, wantLimit: DefaultLimit},
		{name: "explicit", raw: "page=3&limit=20", wantPage: 3, wantLimit: 20},
		{name: "not a number", raw: "page=two", wantErr: true},
		{name: "offset overflows", raw: "page=9223372036854775807&limit=100", wantErr: true},
		{name: "largest page of one row", raw: "page=9223372036854775807&limit=1", wantPage: math.MaxInt64, wantLimit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(mustValues(t, tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantLimit, f.Limit)
		})
	}
}
