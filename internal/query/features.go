// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Defaults applied when the query string does not say otherwise.
const (
	DefaultPage  = 1
	DefaultLimit = 100
	DefaultSort  = "-createdAt"
)

// Op is a comparison operator of a [Filter].
type Op string

const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
	OpGt  Op = "gt"
	OpLte Op = "lte"
	OpLt  Op = "lt"
	OpIn  Op = "in"
)

var reservedParams = []string{"page", "sort", "limit", "fields"}

var operatorKey = regexp.MustCompile(`^(\w+)\[(\w+)\]$`)

// Filter is one condition of the WHERE clause.
type Filter struct {
	Field  string
	Op     Op
	Values []string
}

// SortField is one term of the ORDER BY clause.
type SortField struct {
	Field string
	Desc  bool
}

// Features is the parsed form of a list query string.
type Features struct {
	Filters []Filter
	Sort    []SortField

	// Fields is the projection. With Exclude set it lists the fields to
	// leave out, otherwise the only fields to return.
	Fields  []string
	Exclude bool

	Page  int
	Limit int
}

// Parse reads filters, sort, projection and pagination from values.
//
// Keys listed in whitelist may repeat and are combined into IN; for any
// other repeated key the last value wins.
func Parse(values url.Values, whitelist ...string) (Features, error) {
	f := Features{Page: DefaultPage, Limit: DefaultLimit}

	keys := make([]string, 0, len(values))
	for key := range values {
		if !slices.Contains(reservedParams, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}

		field, op := key, OpEq
		if m := operatorKey.FindStringSubmatch(key); m != nil {
			field, op = m[1], Op(m[2])
			if !isRangeOp(op) {
				return Features{}, fmt.Errorf("%w: %s", ErrUnknownOperator, m[2])
			}
		}

		switch {
		case op == OpEq && len(vals) > 1 && slices.Contains(whitelist, field):
			f.Filters = append(f.Filters, Filter{Field: field, Op: OpIn, Values: vals})
		default:
			f.Filters = append(f.Filters, Filter{Field: field, Op: op, Values: vals[len(vals)-1:]})
		}
	}

	f.Sort = parseSort(lastValue(values, "sort"))

	fields, exclude, err := parseFields(lastValue(values, "fields"))
	if err != nil {
		return Features{}, err
	}
	f.Fields, f.Exclude = fields, exclude

	if f.Page, err = parsePositive("page", lastValue(values, "page"), DefaultPage); err != nil {
		return Features{}, err
	}
	if f.Limit, err = parsePositive("limit", lastValue(values, "limit"), DefaultLimit); err != nil {
		return Features{}, err
	}
	if _, ok := offset(f.Page, f.Limit); !ok {
		return Features{}, &ValueError{Field: "page", Value: lastValue(values, "page"), Err: ErrPageOutOfRange}
	}

	return f, nil
}

// Offset is the number of rows skipped before the current page. It is 0
// when (Page-1)*Limit does not fit in an int64; Parse rejects such pages.
func (f Features) Offset() int {
	n, _ := offset(f.Page, f.Limit)
	return n
}

// offset computes (page-1)*limit and reports false when the product
// overflows. Non-positive pages and limits skip nothing.
func offset(page, limit int) (int, bool) {
	if page < 1 || limit < 1 {
		return 0, true
	}
	if page-1 > math.MaxInt64/limit {
		return 0, false
	}
	return (page - 1) * limit, true
}

func isRangeOp(op Op) bool {
	switch op {
	case OpGte, OpGt, OpLte, OpLt:
		return true
	}

	return false
}

func lastValue(values url.Values, key string) string {
	vals := values[key]
	if len(vals) == 0 {
		return ""
	}

	return strings.TrimSpace(vals[len(vals)-1])
}

func parseSort(raw string) []SortField {
	if raw == "" {
		raw = DefaultSort
	}

	var sort []SortField
	for _, term := range strings.Split(raw, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		desc := strings.HasPrefix(term, "-")
		sort = append(sort, SortField{Field: strings.TrimPrefix(term, "-"), Desc: desc})
	}

	return sort
}

func parseFields(raw string) ([]string, bool, error) {
	if raw == "" || raw == "*" {
		return nil, false, nil
	}

	var (
		fields           []string
		include, exclude bool
	)
	for _, term := range strings.Split(raw, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if strings.HasPrefix(term, "-") {
			exclude = true
			term = strings.TrimPrefix(term, "-")
		} else {
			include = true
		}
		fields = append(fields, term)
	}

	if include && exclude {
		return nil, false, ErrMixedProjection
	}

	return fields, exclude, nil
}

// parsePositive falls back to def for absent or non-positive values.
func parsePositive(name, raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValueError{Field: name, Value: raw, Err: err}
	}
	if n < 1 {
		return def, nil
	}

	return n, nil
}
