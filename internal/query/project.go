// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Project applies the projection of f to the JSON form of docs.
//
// Without a projection, docs are returned untouched unless the schema has
// hidden fields. Fields that are not part of the schema, such as computed
// or populated ones, are kept unless an inclusion list is given.
func Project[T any](docs []T, f Features, schema Schema) (any, error) {
	if len(f.Fields) == 0 && !schema.hasHidden() {
		return docs, nil
	}

	out := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		m, err := project(doc, f, schema)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

// ProjectOne hides the hidden fields of a single document.
func ProjectOne[T any](doc T, schema Schema) (any, error) {
	if !schema.hasHidden() {
		return doc, nil
	}

	return project(doc, Features{}, schema)
}

func project(doc any, f Features, schema Schema) (map[string]any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error marshaling document for projection: %w", err)
	}

	var m map[string]any
	if err = json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("error unmarshaling document for projection: %w", err)
	}

	include := len(f.Fields) > 0 && !f.Exclude
	for key := range m {
		if key == schema.Key {
			continue
		}

		requested := slices.Contains(f.Fields, key)
		field, known := schema.Fields[key]

		switch {
		case include && !requested:
			delete(m, key)
		case f.Exclude && requested:
			delete(m, key)
		case !include && known && field.Hidden:
			delete(m, key)
		}
	}

	return m, nil
}

func (s Schema) hasHidden() bool {
	for _, f := range s.Fields {
		if f.Hidden {
			return true
		}
	}

	return false
}
