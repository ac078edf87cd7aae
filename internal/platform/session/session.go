// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session keeps the logged-in user in a signed cookie.

The cookie carries an HS256 token whose subject is the user ID. Nothing is
stored server-side: a session ends when the cookie expires or the browser
drops it on [Manager.Logout].

Usage:

	sessions, err := session.NewManager(session.Options{
	    Secret: secret,
	    Secure: cfg.IsProduction(),
	})
	...
	userID, err := sessions.RequireUserID(request)
	if err != nil {
	    respond.Error(writer, request, err) // 303 to /login?redirectTo=...
	    return
	}
*/
package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/constants"
	"github.com/taibuivan/hms/internal/platform/sec"
)

// LoginPath is where anonymous users are sent by [Manager.RequireUserID].
const LoginPath = "/login"

// Options configures a [Manager]. Zero values take the platform defaults.
type Options struct {
	// Secret signs the cookie. Required.
	Secret string
	// Secure restricts the cookie to HTTPS (production).
	Secure bool
	// MaxAge is the cookie and token lifetime. Defaults to 7 days.
	MaxAge time.Duration
	// CookieName defaults to "__session".
	CookieName string
}

// Manager issues, reads and clears the session cookie.
type Manager struct {
	signer *sec.HMACSigner
	opts   Options
}

// NewManager validates opts and builds a [Manager].
func NewManager(opts Options) (*Manager, error) {
	signer, err := sec.NewHMACSigner(opts.Secret, constants.SessionIssuer)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	if opts.MaxAge <= 0 {
		opts.MaxAge = constants.SessionMaxAge
	}
	if opts.CookieName == "" {
		opts.CookieName = constants.SessionCookieName
	}

	return &Manager{signer: signer, opts: opts}, nil
}

// WithClock overrides the token clock. Tests only.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.signer.WithClock(now)
	return m
}

// CreateUserSession sets the session cookie for userID and redirects (303)
// to redirectTo, or "/" when redirectTo is not a safe local path.
func (m *Manager) CreateUserSession(writer http.ResponseWriter, request *http.Request, userID, redirectTo string) error {
	token, err := m.signer.Sign(userID, m.opts.MaxAge)
	if err != nil {
		return apperr.Internal(fmt.Errorf("session: sign: %w", err))
	}

	http.SetCookie(writer, m.cookie(token, int(m.opts.MaxAge.Seconds())))
	http.Redirect(writer, request, SafeRedirect(redirectTo, "/"), http.StatusSeeOther)
	return nil
}

// UserID returns the user behind the request's session cookie.
//
// A missing cookie, a bad signature and an expired token all report false.
func (m *Manager) UserID(request *http.Request) (string, bool) {
	cookie, err := request.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims, err := m.signer.Verify(cookie.Value)
	if err != nil {
		return "", false
	}
	return claims.UserID(), true
}

// RequireUserID returns the session user, or an [apperr.Redirect] to the login
// page carrying the current path as redirectTo.
func (m *Manager) RequireUserID(request *http.Request) (string, error) {
	if userID, ok := m.UserID(request); ok {
		return userID, nil
	}

	query := url.Values{"redirectTo": {request.URL.RequestURI()}}
	return "", apperr.Redirect(LoginPath + "?" + query.Encode())
}

// Logout expires the session cookie and redirects (303) to the login page.
func (m *Manager) Logout(writer http.ResponseWriter, request *http.Request) {
	m.Clear(writer)
	http.Redirect(writer, request, LoginPath, http.StatusSeeOther)
}

// Clear expires the session cookie without redirecting.
func (m *Manager) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SafeRedirect returns to when it is a same-site absolute path, else fallback.
//
// Protocol-relative ("//evil.com") and backslash ("/\evil.com") forms are
// rejected because browsers resolve them to another host.
func SafeRedirect(to, fallback string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.HasPrefix(to, "/\\") {
		return fallback
	}
	return to
}
