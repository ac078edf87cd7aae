// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hms/internal/platform/constants"
	"github.com/taibuivan/hms/internal/platform/ctxutil"
	"github.com/taibuivan/hms/internal/platform/session"
)

func newTestRouter(t *testing.T, userID string, service *Service) chi.Router {
	t.Helper()

	sessions, err := session.NewManager(session.Options{Secret: "test-secret"})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithUserID(request.Context(), userID)))
		})
	})
	NewHandler(service, sessions).Routes(router)
	return router
}

func serve(router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Account drives the profile, password and delete endpoints.
*/
func TestHandler_Account(t *testing.T) {
	service, repo := newTestService(fakeHasher{})
	user := repo.addUser("tai@example.com", "password123")
	router := newTestRouter(t, user.ID, service)

	recorder := serve(router, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"email":"tai@example.com"`)
	assert.NotContains(t, recorder.Body.String(), "hashed:")

	recorder = serve(router, http.MethodPatch, "/me", `{"name":"Tai"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Tai"`)

	recorder = serve(router, http.MethodPost, "/me/password", `{"currentPassword":"nope-nope","password":"newpassword","passwordConfirm":"newpassword"}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"currentPassword":["Current password is incorrect"]`)

	recorder = serve(router, http.MethodPost, "/me/password", `{"currentPassword":"password123","password":"newpassword","passwordConfirm":"newpassword"}`)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = serve(router, http.MethodDelete, "/me", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	var cleared *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			cleared = cookie
		}
	}
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)

	recorder = serve(router, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
