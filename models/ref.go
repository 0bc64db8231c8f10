// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
)

// Ref is a weak reference from one document to another.
//
// Until the referenced document is loaded, a Ref is serialised as the bare
// id string. After [Ref.Populate] it is serialised as the embedded document.
// On input both forms are accepted; only the id is kept.
type Ref[T any] struct {
	// ID is the identifier of the referenced document.
	ID string

	// Doc holds the populated document or nil.
	Doc *T
}

// NewRef returns an unpopulated reference to id.
func NewRef[T any](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// Populate embeds doc into the reference.
func (r *Ref[T]) Populate(doc T) {
	r.Doc = &doc
}

// IsZero reports whether the reference points nowhere.
func (r Ref[T]) IsZero() bool {
	return r.ID == ""
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Doc != nil {
		return json.Marshal(r.Doc)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}

	return json.Marshal(r.ID)
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref[T]{ID: id}
		return nil
	}

	var doc struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	*r = Ref[T]{ID: doc.ID}

	return nil
}

// RefIDs collects the ids of refs, skipping empty ones.
func RefIDs[T any](refs []Ref[T]) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}

	return ids
}

// NewRefs turns ids into unpopulated references.
func NewRefs[T any](ids []string) []Ref[T] {
	refs := make([]Ref[T], 0, len(ids))
	for _, id := range ids {
		refs = append(refs, NewRef[T](id))
	}

	return refs
}
