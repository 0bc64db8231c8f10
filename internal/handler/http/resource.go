// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/internal/service"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/go-chi/chi/v5"
)

// Route parameters shared by the resource routes.
const (
	paramID     = "id"
	paramTourID = "tourId"
)

// createOne decodes the body over a default document, lets prepare adjust
// it and stores it.
func createOne[T any](svc service.ResourceService[T], prepare ...func(r *http.Request, doc *T)) appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		doc := svc.New()
		if err := decodeJSON(w, r, &doc); err != nil {
			return err
		}
		for _, p := range prepare {
			p(r, &doc)
		}

		created, err := svc.Create(r.Context(), doc)
		if err != nil {
			return err
		}

		out, err := query.ProjectOne(created, svc.Schema())
		if err != nil {
			return err
		}

		return respondData(w, http.StatusCreated, out)
	}
}

func getOne[T any](svc service.ResourceService[T]) appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		doc, err := svc.FindByID(r.Context(), chi.URLParam(r, paramID))
		if err != nil {
			return err
		}

		out, err := query.ProjectOne(doc, svc.Schema())
		if err != nil {
			return err
		}

		return respondData(w, http.StatusOK, out)
	}
}

// getAll lists documents matching the query string. Under
// /tours/{tourId}/... the list is restricted to that tour.
func getAll[T any](svc service.ResourceService[T]) appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		schema := svc.Schema()

		f, err := query.Parse(r.URL.Query(), schema.Whitelist()...)
		if err != nil {
			return err
		}

		var scope store.Scope
		if tourID := chi.URLParam(r, paramTourID); tourID != "" {
			scope = store.Scope{"tour": tourID}
		}

		docs, err := svc.List(r.Context(), f, scope)
		if err != nil {
			return err
		}

		out, err := query.Project(docs, f, schema)
		if err != nil {
			return err
		}

		return respondList(w, len(docs), out)
	}
}

// updateOne overlays the JSON body on the stored document.
func updateOne[T any](svc service.ResourceService[T]) appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		updated, err := svc.UpdateByID(r.Context(), chi.URLParam(r, paramID), func(doc *T) error {
			return decodeJSON(w, r, doc)
		})
		if err != nil {
			return err
		}

		out, err := query.ProjectOne(updated, svc.Schema())
		if err != nil {
			return err
		}

		return respondData(w, http.StatusOK, out)
	}
}

func deleteOne[T any](svc service.ResourceService[T]) appHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		if err := svc.DeleteByID(r.Context(), chi.URLParam(r, paramID)); err != nil {
			return err
		}

		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}
