// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/hms/internal/platform/ctxutil"
	"github.com/taibuivan/hms/internal/platform/respond"
)

// SessionReader resolves the user behind a request's session cookie.
//
// Defined here so the middleware does not import the session package;
// *session.Manager satisfies it.
type SessionReader interface {
	// RequireUserID returns the user ID, or a redirect error to the login page.
	RequireUserID(request *http.Request) (string, error)
}

// RequireUser blocks anonymous requests.
//
// # Flow
//  1. Resolve the session cookie via [SessionReader].
//  2. If missing or invalid, respond with the redirect error (303 to /login).
//  3. Otherwise place the user ID in context and tag the request logger with it.
func RequireUser(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			userID, err := sessions.RequireUserID(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			ctx := ctxutil.WithUserID(request.Context(), userID)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", userID)))

			if holder, ok := ctx.Value(identityKey{}).(*identityHolder); ok {
				holder.set(userID)
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
