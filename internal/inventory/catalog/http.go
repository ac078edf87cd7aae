// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hms/internal/platform/request"
	"github.com/taibuivan/hms/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for categories, locations and units.
//
// Every route expects the RequireUser middleware in front of it.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes registers the catalog endpoints on router.
//
// # Endpoints
//   - /categories, /locations: GET list, POST create; GET, PUT, DELETE /{id}
//   - /units: same verbs
func (handler *Handler) Routes(router chi.Router) {
	router.Route("/categories", handler.entryRoutes(CollectionCategories))
	router.Route("/locations", handler.entryRoutes(CollectionLocations))

	router.Route("/units", func(units chi.Router) {
		units.Get("/", handler.listUnits)
		units.Post("/", handler.createUnit)
		units.Get("/{id}", handler.getUnit)
		units.Put("/{id}", handler.updateUnit)
		units.Delete("/{id}", handler.deleteUnit)
	})
}

func (handler *Handler) entryRoutes(collection Collection) func(chi.Router) {
	return func(entries chi.Router) {
		entries.Get("/", handler.listEntries(collection))
		entries.Post("/", handler.createEntry(collection))
		entries.Get("/{id}", handler.getEntry(collection))
		entries.Put("/{id}", handler.updateEntry(collection))
		entries.Delete("/{id}", handler.deleteEntry(collection))
	}
}

// # Entry Endpoints

func (handler *Handler) listEntries(collection Collection) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ownerID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		entries, err := handler.service.ListEntries(request.Context(), collection, ownerID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, entries)
	}
}

func (handler *Handler) getEntry(collection Collection) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ownerID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		entry, err := handler.service.GetEntry(request.Context(), collection, ownerID, requestutil.ID(request, "id"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, entry)
	}
}

/*
POST /api/v1/categories, POST /api/v1/locations.

Request (Body):
  - name: string (required, at most 100 characters)
  - description: string (optional)

Response:
  - 201: Entry
  - 400: {errors}, including a duplicate name on errors.name
*/
func (handler *Handler) createEntry(collection Collection) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ownerID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var form EntryForm
		if err := requestutil.DecodeForm(request, &form); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entry, err := handler.service.CreateEntry(request.Context(), collection, ownerID, form)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, entry)
	}
}

func (handler *Handler) updateEntry(collection Collection) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ownerID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var form EntryForm
		if err := requestutil.DecodeForm(request, &form); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entry, err := handler.service.UpdateEntry(request.Context(), collection, ownerID, requestutil.ID(request, "id"), form)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, entry)
	}
}

func (handler *Handler) deleteEntry(collection Collection) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ownerID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		if err := handler.service.DeleteEntry(request.Context(), collection, ownerID, requestutil.ID(request, "id")); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
	}
}

// # Unit Endpoints

func (handler *Handler) listUnits(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	units, err := handler.service.ListUnits(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, units)
}

func (handler *Handler) getUnit(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	unit, err := handler.service.GetUnit(request.Context(), ownerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, unit)
}

/*
POST /api/v1/units.

Request (Body):
  - name: string (required)
  - abbreviation: string (required, letters and dots, at most 10)

Response:
  - 201: Unit
  - 400: {errors}
*/
func (handler *Handler) createUnit(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form UnitForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	unit, err := handler.service.CreateUnit(request.Context(), ownerID, form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, unit)
}

func (handler *Handler) updateUnit(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form UnitForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	unit, err := handler.service.UpdateUnit(request.Context(), ownerID, requestutil.ID(request, "id"), form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, unit)
}

func (handler *Handler) deleteUnit(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteUnit(request.Context(), ownerID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
