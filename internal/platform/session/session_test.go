// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/session"
)

func newManager(t *testing.T, secret string) *session.Manager {
	t.Helper()
	m, err := session.NewManager(session.Options{Secret: secret, Secure: true})
	require.NoError(t, err)
	return m
}

// login issues a cookie for userID and returns it.
func login(t *testing.T, m *session.Manager, userID, redirectTo string) (*http.Cookie, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, m.CreateUserSession(rec, req, userID, redirectTo))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0], rec
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := session.NewManager(session.Options{})
	assert.Error(t, err)
}

func TestCreateUserSession(t *testing.T) {
	m := newManager(t, "secret-a")
	cookie, rec := login(t, m, "user-1", "/items?lowStock=true")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/items?lowStock=true", rec.Header().Get("Location"))

	assert.Equal(t, "__session", cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestCreateUserSession_UnsafeRedirect(t *testing.T) {
	m := newManager(t, "secret-a")
	_, rec := login(t, m, "user-1", "//evil.example.com")
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestUserID(t *testing.T) {
	m := newManager(t, "secret-a")
	cookie, _ := login(t, m, "user-1", "")

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		id, ok := m.UserID(req)
		assert.True(t, ok)
		assert.Equal(t, "user-1", id)
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := m.UserID(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, ok)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other := newManager(t, "secret-b")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		_, ok := other.UserID(req)
		assert.False(t, ok)
	})

	t.Run("tampered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"})
		_, ok := m.UserID(req)
		assert.False(t, ok)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-8 * 24 * time.Hour)
		stale := newManager(t, "secret-a").WithClock(func() time.Time { return past })
		old, _ := login(t, stale, "user-1", "")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(old)
		_, ok := m.UserID(req)
		assert.False(t, ok)
	})
}

func TestRequireUserID(t *testing.T) {
	m := newManager(t, "secret-a")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items?page=2", nil)
	_, err := m.RequireUserID(req)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindRedirect, ae.Kind)
	assert.Equal(t, "/login?redirectTo=%2Fapi%2Fv1%2Fitems%3Fpage%3D2", ae.Location)

	cookie, _ := login(t, m, "user-9", "")
	req.AddCookie(cookie)
	id, err := m.RequireUserID(req)
	require.NoError(t, err)
	assert.Equal(t, "user-9", id)
}

func TestLogout(t *testing.T) {
	m := newManager(t, "secret-a")
	rec := httptest.NewRecorder()
	m.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "__session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		to   string
		want string
	}{
		{"", "/"},
		{"/items", "/items"},
		{"https://evil.example.com", "/"},
		{"//evil.example.com", "/"},
		{"/\\evil.example.com", "/"},
		{"items", "/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, session.SafeRedirect(tt.to, "/"), tt.to)
	}
}
