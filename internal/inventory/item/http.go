// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/hms/internal/platform/request"
	"github.com/taibuivan/hms/internal/platform/respond"
	"github.com/taibuivan/hms/pkg/convert"
	"github.com/taibuivan/hms/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for items and stock movements.
//
// Every route expects the RequireUser middleware in front of it.
type Handler struct {
	service *Service
}

// NewHandler constructs a new item [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// MoveResult is the response body of a stock movement.
type MoveResult struct {
	Item     *Item    `json:"item"`
	Movement *History `json:"movement"`
}

// Routes registers the item endpoints on router.
//
// # Endpoints
//   - GET /items, POST /items
//   - GET, PUT, DELETE /items/{id}
//   - POST /items/{id}/moves
//   - GET /items/{id}/history
func (handler *Handler) Routes(router chi.Router) {
	router.Route("/items", func(items chi.Router) {
		items.Get("/", handler.list)
		items.Post("/", handler.create)

		items.Route("/{id}", func(item chi.Router) {
			item.Get("/", handler.get)
			item.Put("/", handler.update)
			item.Delete("/", handler.delete)
			item.Post("/moves", handler.move)
			item.Get("/history", handler.history)
		})
	})
}

// # Endpoints

/*
GET /api/v1/items.

Request (Query):
  - q: string (matches name or description)
  - categoryId, locationId: string
  - lowStock: bool (quantity at or below minQuantity)
  - sort: name | quantity | updated | expires
  - page, limit: int

Response:
  - 200: {data: []Item, meta}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	query := request.URL.Query()
	filter := Filter{
		Query:      strings.TrimSpace(query.Get("q")),
		CategoryID: query.Get("categoryId"),
		LocationID: query.Get("locationId"),
		LowStock:   convert.ToBool(query.Get("lowStock")),
		Sort:       Sort(query.Get("sort")),
	}
	params := pagination.FromRequest(request)

	items, total, err := handler.service.List(request.Context(), ownerID, filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Get(request.Context(), ownerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

/*
POST /api/v1/items.

Request (Body):
  - name: string (required)
  - description: string
  - quantity, minQuantity: whole number (default 0)
  - unitId, categoryId, locationId: string (must exist in the caller's catalog)
  - expiresAt: date (future)

Response:
  - 201: Item
  - 400: {errors}
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form ItemForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), ownerID, form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form ItemForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), ownerID, requestutil.ID(request, "id"), form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ownerID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/items/{id}/moves.

Request (Body):
  - reason: in | out | adjust
  - quantity: whole number (amount moved, or the new count for adjust)
  - note: string

Response:
  - 201: MoveResult
  - 400: {errors}, errors.quantity when stock would go negative
*/
func (handler *Handler) move(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var form MoveForm
	if err := requestutil.DecodeForm(request, &form); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, movement, err := handler.service.Move(request.Context(), ownerID, requestutil.ID(request, "id"), form)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, MoveResult{Item: item, Movement: movement})
}

func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	entries, total, err := handler.service.History(request.Context(), ownerID, requestutil.ID(request, "id"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, entries, pagination.NewMeta(params.Page, params.Limit, total))
}
