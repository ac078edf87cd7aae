// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package item

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hms/internal/platform/ctxutil"
	"github.com/taibuivan/hms/pkg/pagination"
	"github.com/taibuivan/hms/pkg/uuid"
)

// newTestRouter mounts the item routes behind a stand-in for RequireUser.
func newTestRouter(ownerID string) (chi.Router, *memRepository) {
	service, repo := newTestService()

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if ownerID != "" {
				request = request.WithContext(ctxutil.WithUserID(request.Context(), ownerID))
			}
			next.ServeHTTP(writer, request)
		})
	})
	NewHandler(service).Routes(router)
	return router, repo
}

func serve(router chi.Router, method, path, body, contentType string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T               `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

/*
TestHandler_ItemLifecycle drives create, move, history and delete over HTTP.
*/
func TestHandler_ItemLifecycle(t *testing.T) {
	router, _ := newTestRouter(uuid.New())

	recorder := serve(router, http.MethodPost, "/items", `{"name":"Milk","quantity":2,"minQuantity":"1"}`, "application/json")
	require.Equal(t, http.StatusCreated, recorder.Code)
	created := decode[Item](t, recorder)
	assert.Equal(t, 2, created.Quantity)
	assert.Equal(t, 1, created.MinQuantity)

	form := url.Values{"reason": {"out"}, "quantity": {"2"}, "note": {"pancakes"}}
	recorder = serve(router, http.MethodPost, "/items/"+created.ID+"/moves", form.Encode(), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusCreated, recorder.Code)
	moved := decode[MoveResult](t, recorder)
	assert.Equal(t, 0, moved.Item.Quantity)
	assert.Equal(t, -2, moved.Movement.Change)

	recorder = serve(router, http.MethodPost, "/items/"+created.ID+"/moves", `{"reason":"out","quantity":1}`, "application/json")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"quantity":["Not enough stock for this movement"]`)

	recorder = serve(router, http.MethodGet, "/items/"+created.ID+"/history", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":2`)
	history := decode[[]History](t, recorder)
	require.Len(t, history, 2)
	assert.Equal(t, ReasonOut, history[0].Reason)

	recorder = serve(router, http.MethodPut, "/items/"+created.ID, `{"name":"Oat milk","quantity":"4"}`, "application/json")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Oat milk", decode[Item](t, recorder).Name)

	recorder = serve(router, http.MethodDelete, "/items/"+created.ID, "", "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serve(router, http.MethodGet, "/items/"+created.ID, "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"error":"Item not found"`)
}

/*
TestHandler_List passes query filters through and returns pagination metadata.
*/
func TestHandler_List(t *testing.T) {
	router, _ := newTestRouter(uuid.New())

	for _, body := range []string{
		`{"name":"Apples","quantity":1,"minQuantity":2}`,
		`{"name":"Bread","quantity":5,"minQuantity":1}`,
		`{"name":"Cheese","quantity":0}`,
	} {
		require.Equal(t, http.StatusCreated, serve(router, http.MethodPost, "/items", body, "application/json").Code)
	}

	recorder := serve(router, http.MethodGet, "/items?lowStock=true&sort=quantity&limit=1", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var page struct {
		Data []Item          `json:"data"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Cheese", page.Data[0].Name)
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 1, Total: 2, TotalPages: 2}, page.Meta)

	recorder = serve(router, http.MethodGet, "/items?sort=price", "", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_Validation returns field errors for invalid bodies.
*/
func TestHandler_Validation(t *testing.T) {
	router, _ := newTestRouter(uuid.New())

	form := url.Values{"name": {""}, "quantity": {"lots"}}
	recorder := serve(router, http.MethodPost, "/items", form.Encode(), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, []string{MsgNameRequired}, body.Errors[FieldName])
	assert.Equal(t, []string{MsgQuantityInteger}, body.Errors[FieldQuantity])

	recorder = serve(router, http.MethodPost, "/items", `{"name":`, "application/json")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"form":["Invalid request payload"]`)
}

/*
TestHandler_Anonymous answers 401 without a session user.
*/
func TestHandler_Anonymous(t *testing.T) {
	router, _ := newTestRouter("")

	recorder := serve(router, http.MethodGet, "/items", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
