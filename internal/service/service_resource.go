// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/internal/validators"
)

// hooks are the per-resource steps run around the generic operations.
// Every hook is optional.
type hooks[T any] struct {
	// beforeSave derives fields before validation on create and update.
	beforeSave func(ctx context.Context, doc *T) error
	// afterWrite runs after a successful create, update or delete.
	afterWrite func(ctx context.Context, doc T) error
	// afterUpdate replaces afterWrite on update when the hook needs the
	// stored state from before the change.
	afterUpdate func(ctx context.Context, before, after T) error
	// populate fills references of documents returned to the client.
	populate func(ctx context.Context, docs []T) error
}

// resourceService implements [ResourceService] on top of a
// [store.Repository].
type resourceService[T any] struct {
	name       string
	repository store.Repository[T]
	validator  validators.Validator
	newDoc     func() T
	hooks      hooks[T]

	logger *logger.Logger
}

func newResourceService[T any](name string, repository store.Repository[T], validator validators.Validator, newDoc func() T, h hooks[T], logger *logger.Logger) *resourceService[T] {
	return &resourceService[T]{
		name:       name,
		repository: repository,
		validator:  validator,
		newDoc:     newDoc,
		hooks:      h,
		logger:     logger,
	}
}

func (s *resourceService[T]) New() T {
	return s.newDoc()
}

func (s *resourceService[T]) Schema() query.Schema {
	return s.repository.Schema()
}

func (s *resourceService[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	if err := checkID(id); err != nil {
		return zero, err
	}

	doc, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return zero, notFound(err)
	}

	if err = s.populateOne(ctx, &doc); err != nil {
		return zero, err
	}

	return doc, nil
}

func (s *resourceService[T]) Create(ctx context.Context, doc T) (T, error) {
	log := logger.FromContext(ctx)
	var zero T

	if err := s.prepare(ctx, &doc); err != nil {
		return zero, err
	}

	created, err := s.repository.Create(ctx, doc)
	if err != nil {
		log.Err(err).Str("func", s.funcName("Create")).Msg("error creating document")
		return zero, err
	}

	if err = s.afterWrite(ctx, created); err != nil {
		return zero, err
	}

	return created, nil
}

func (s *resourceService[T]) UpdateByID(ctx context.Context, id string, apply func(*T) error) (T, error) {
	log := logger.FromContext(ctx)
	var zero T

	if err := checkID(id); err != nil {
		return zero, err
	}

	doc, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return zero, notFound(err)
	}

	before := doc
	if err = apply(&doc); err != nil {
		return zero, err
	}
	if err = s.prepare(ctx, &doc); err != nil {
		return zero, err
	}

	updated, err := s.repository.UpdateByID(ctx, id, doc)
	if err != nil {
		log.Err(err).Str("func", s.funcName("UpdateByID")).Str("id", id).Msg("error updating document")
		return zero, notFound(err)
	}

	if s.hooks.afterUpdate != nil {
		err = s.hooks.afterUpdate(ctx, before, updated)
		if err != nil {
			log.Err(err).Str("func", s.funcName("UpdateByID")).Msg("post-update hook failed")
		}
	} else {
		err = s.afterWrite(ctx, updated)
	}
	if err != nil {
		return zero, err
	}

	return updated, nil
}

func (s *resourceService[T]) DeleteByID(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	deleted, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return notFound(err)
	}

	return s.afterWrite(ctx, deleted)
}

func (s *resourceService[T]) List(ctx context.Context, f query.Features, scope store.Scope) ([]T, error) {
	docs, err := s.repository.List(ctx, f, scope)
	if err != nil {
		return nil, err
	}

	if s.hooks.populate != nil {
		if err = s.hooks.populate(ctx, docs); err != nil {
			return nil, err
		}
	}

	return docs, nil
}

// prepare runs beforeSave and validates the result.
func (s *resourceService[T]) prepare(ctx context.Context, doc *T) error {
	if s.hooks.beforeSave != nil {
		if err := s.hooks.beforeSave(ctx, doc); err != nil {
			return err
		}
	}

	return s.validator.Validate(ctx, *doc)
}

func (s *resourceService[T]) afterWrite(ctx context.Context, doc T) error {
	if s.hooks.afterWrite == nil {
		return nil
	}

	if err := s.hooks.afterWrite(ctx, doc); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", s.funcName("afterWrite")).Msg("post-write hook failed")
		return err
	}

	return nil
}

func (s *resourceService[T]) populateOne(ctx context.Context, doc *T) error {
	if s.hooks.populate == nil {
		return nil
	}

	docs := []T{*doc}
	if err := s.hooks.populate(ctx, docs); err != nil {
		return err
	}
	*doc = docs[0]

	return nil
}

func (s *resourceService[T]) funcName(method string) string {
	return fmt.Sprintf("*resourceService[%s].%s", s.name, method)
}

// checkID rejects ids that are not UUIDs before they reach the database.
func checkID(id string) error {
	if !utils.IsUUID(id) {
		return app.Wrapf(store.ErrInvalidValue, app.MsgInvalidValue, "id", id)
	}

	return nil
}

// notFound attaches the client message to a missing document.
func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return app.Wrap(err, app.MsgNoDocumentFound)
	}

	return err
}
