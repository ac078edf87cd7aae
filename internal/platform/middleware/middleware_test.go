// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/ctxutil"
	"github.com/taibuivan/hms/internal/platform/middleware"
)

type stubSessions struct {
	userID string
}

func (s stubSessions) RequireUserID(*http.Request) (string, error) {
	if s.userID == "" {
		return "", apperr.Redirect("/login?redirectTo=%2Fapi%2Fv1%2Fitems")
	}
	return s.userID, nil
}

type stubCORS struct {
	dev     bool
	origins []string
}

func (c stubCORS) IsDevelopment() bool      { return c.dev }
func (c stubCORS) AllowedOrigins() []string { return c.origins }

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "upstream-id", seen)
}

func TestRequireUser(t *testing.T) {
	t.Run("anonymous_redirects", func(t *testing.T) {
		rec := httptest.NewRecorder()
		middleware.RequireUser(stubSessions{})(okHandler).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/items", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?redirectTo=%2Fapi%2Fv1%2Fitems", rec.Header().Get("Location"))
	})

	t.Run("session_user_in_context", func(t *testing.T) {
		var seen string
		handler := middleware.RequireUser(stubSessions{userID: "user-1"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = ctxutil.GetUserID(r.Context())
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/items", nil))
		assert.Equal(t, "user-1", seen)
	})
}

func TestStructuredLogger_RecordsUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	chain := middleware.StructuredLogger(logger)(middleware.RequireUser(stubSessions{userID: "user-7"})(okHandler))
	chain.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/items", nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, "http_request_finished", entry["msg"])
	assert.Equal(t, "user-7", entry["user_id"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 1, 2)(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORS(t *testing.T) {
	cfg := stubCORS{origins: []string{"https://home.example.com"}}
	handler := middleware.CORS(cfg)(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/login", nil)
	req.Header.Set("Origin", "https://home.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://home.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestClientIP honours proxy headers from trusted peers only.
*/
func TestClientIP(t *testing.T) {
	trusted := []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}

	tests := []struct {
		name      string
		remote    string
		realIP    string
		forwarded string
		want      string
	}{
		{name: "direct_peer", remote: "203.0.113.7:4000", want: "203.0.113.7"},
		{name: "untrusted_peer_forges_real_ip", remote: "203.0.113.7:4000", realIP: "198.51.100.5", want: "203.0.113.7"},
		{name: "untrusted_peer_forges_forwarded", remote: "203.0.113.7:4000", forwarded: "198.51.100.4", want: "203.0.113.7"},
		{name: "trusted_proxy_real_ip", remote: "10.0.0.1:1234", realIP: "198.51.100.5", want: "198.51.100.5"},
		{name: "trusted_proxy_rightmost_untrusted_hop", remote: "10.0.0.1:1234", forwarded: "192.0.2.66, 198.51.100.4, 10.0.0.2", want: "198.51.100.4"},
		{name: "trusted_proxy_forwarded_wins_over_real_ip", remote: "10.0.0.1:1234", realIP: "192.0.2.66", forwarded: "198.51.100.4", want: "198.51.100.4"},
		{name: "trusted_proxy_without_headers", remote: "10.0.0.1:1234", want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := middleware.ClientIP(trusted)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = middleware.RealIP(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, seen)
		})
	}
}

/*
TestRealIP ignores proxy headers when no address was resolved.
*/
func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	req.Header.Set("X-Real-IP", "198.51.100.5")
	assert.Equal(t, "10.0.0.1", middleware.RealIP(req))
}

/*
TestRateLimit_RotatingHeaders keeps one bucket per peer when headers change.
*/
func TestRateLimit_RotatingHeaders(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.ClientIP(nil)(middleware.RateLimit(ctx, 1, 2)(okHandler))

	codes := make([]int, 0, 3)
	for i := range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		req.Header.Set("X-Real-IP", fmt.Sprintf("198.51.100.%d", i+1))
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
