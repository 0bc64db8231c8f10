// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the value type of a [Field]. It drives the conversion of query
// string values.
type Kind int

const (
	String Kind = iota
	Number
	Integer
	Bool
	Time
	UUID
	// JSON fields can be projected but neither filtered nor sorted.
	JSON
)

// Field maps a JSON field name to its column.
type Field struct {
	Column string
	Kind   Kind

	// Hidden fields are left out of responses unless explicitly requested.
	Hidden bool

	// Multi fields may repeat in the query string; repeated values are
	// combined into IN.
	Multi bool
}

// Schema describes the queryable fields of one resource.
type Schema struct {
	// Key is the JSON name of the primary key. It is always selected and
	// used as the final sort tiebreaker.
	Key string

	// Order lists the field names in column order.
	Order []string

	Fields map[string]Field
}

// NewSchema builds a schema from fields given in column order. The first
// field is the primary key.
func NewSchema(fields ...NamedField) Schema {
	s := Schema{Fields: make(map[string]Field, len(fields))}
	for i, f := range fields {
		if i == 0 {
			s.Key = f.Name
		}
		s.Order = append(s.Order, f.Name)
		s.Fields[f.Name] = f.Field
	}

	return s
}

// NamedField pairs a JSON field name with its [Field].
type NamedField struct {
	Name string
	Field
}

// F is shorthand for a visible [NamedField].
func F(name, column string, kind Kind) NamedField {
	return NamedField{Name: name, Field: Field{Column: column, Kind: kind}}
}

// WithHidden marks the field hidden.
func (f NamedField) WithHidden() NamedField {
	f.Hidden = true
	return f
}

// WithMulti marks the field as allowed to repeat in the query string.
func (f NamedField) WithMulti() NamedField {
	f.Multi = true
	return f
}

// Whitelist returns the names of the fields that may repeat in the query
// string. It is meant to be passed to [Parse].
func (s Schema) Whitelist() []string {
	var names []string
	for _, name := range s.Order {
		if s.Fields[name].Multi {
			names = append(names, name)
		}
	}

	return names
}

// Field looks up a field by JSON name.
func (s Schema) Field(name string) (Field, bool) {
	f, ok := s.Fields[name]
	return f, ok
}

// Column returns the column of a field, or an error for unknown fields.
func (s Schema) Column(name string) (string, error) {
	f, ok := s.Fields[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}

	return f.Column, nil
}

// Columns returns every column in schema order.
func (s Schema) Columns() []string {
	cols := make([]string, 0, len(s.Order))
	for _, name := range s.Order {
		cols = append(cols, s.Fields[name].Column)
	}

	return cols
}

// SelectColumns returns the columns a list query must select for the
// requested fields. The key column is always part of the result.
func (s Schema) SelectColumns(f Features) ([]string, error) {
	if err := s.checkFields(f.Fields); err != nil {
		return nil, err
	}

	include := len(f.Fields) > 0 && !f.Exclude

	cols := make([]string, 0, len(s.Order))
	for _, name := range s.Order {
		requested := slices.Contains(f.Fields, name)
		switch {
		case name == s.Key:
		case include && !requested:
			continue
		case f.Exclude && requested:
			continue
		}
		cols = append(cols, s.Fields[name].Column)
	}

	return cols, nil
}

func (s Schema) checkFields(names []string) error {
	for _, name := range names {
		if _, ok := s.Fields[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}

	return nil
}

// convert turns a raw query value into the Go value of kind.
func convert(field string, kind Kind, raw string) (any, error) {
	var (
		v   any
		err error
	)

	switch kind {
	case String:
		return raw, nil
	case Number:
		v, err = strconv.ParseFloat(raw, 64)
	case Integer:
		v, err = strconv.Atoi(raw)
	case Bool:
		v, err = strconv.ParseBool(raw)
	case Time:
		v, err = parseTime(raw)
	case UUID:
		var id uuid.UUID
		id, err = uuid.Parse(raw)
		v = id.String()
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	if err != nil {
		return nil, &ValueError{Field: field, Value: raw, Err: err}
	}

	return v, nil
}

func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	return time.Parse(time.DateOnly, strings.TrimSpace(raw))
}

// ValueError reports a query value that does not fit its field.
type ValueError struct {
	Field string
	Value string
	Err   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Value)
}

func (e *ValueError) Unwrap() []error {
	return []error{ErrInvalidValue, e.Err}
}
