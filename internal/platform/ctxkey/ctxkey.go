// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the keys under which the middleware chain stores
// per-request values. Read them through ctxutil rather than directly.
package ctxkey

// key keeps these values apart from any string key set by other packages.
type key string

const (
	// KeyRequestID holds the X-Request-ID of the request.
	KeyRequestID key = "request_id"

	// KeyLogger holds the request-scoped *slog.Logger.
	KeyLogger key = "logger"

	// KeyUserID holds the id of the user behind the session cookie.
	KeyUserID key = "user_id"

	// KeyClientIP holds the client address resolved from trusted proxies.
	KeyClientIP key = "client_ip"
)
