// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every failure leaves a handler through [Error], which switches on the
// [apperr.Kind] to pick the payload shape the HMS frontend expects:
//
//	validation   → 400 {"success":false,"type":"validation","errors":{...}}
//	auth         → 401 {"success":false,"type":"auth","authError":"..."}
//	rate_limited → 429 {"success":false,"type":"rate_limited","authError":"..."}
//	token        → 400 {"success":false,"type":"token","tokenError":"..."}
//	redirect     → 303 Location: ...
//	anything else → {"success":false,"error":"...","code":"..."}
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/constants"
	"github.com/taibuivan/hms/internal/platform/ctxutil"
	"github.com/taibuivan/hms/pkg/pagination"
)

// SuccessEnvelope is the JSON envelope for successful single-resource responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// ErrorEnvelope is the JSON envelope for error responses.
//
// Only the members relevant to the error's kind are populated.
type ErrorEnvelope struct {
	Success    bool               `json:"success"`
	Type       apperr.Kind        `json:"type,omitempty"`
	Errors     apperr.FieldErrors `json:"errors,omitempty"`
	AuthError  string             `json:"authError,omitempty"`
	TokenError string             `json:"tokenError,omitempty"`
	Error      string             `json:"error,omitempty"`
	Code       string             `json:"code,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard success envelope.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, SuccessEnvelope{Data: data})
}

// Created writes a 201 Created response with data wrapped in the standard success envelope.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, SuccessEnvelope{Data: data})
}

// Paginated writes a 200 OK response with paginated data and a metadata block.
func Paginated(writer http.ResponseWriter, data any, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, PaginatedEnvelope{Data: data, Meta: metadata})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// SeeOther redirects with 303 so browsers follow up with a GET.
func SeeOther(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusSeeOther)
}

// Error converts any Go error into the response shape of its [apperr.Kind].
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	envelope := ErrorEnvelope{Type: appError.Kind}

	switch appError.Kind {
	case apperr.KindRedirect:
		SeeOther(writer, request, appError.Location)
		return
	case apperr.KindValidation:
		envelope.Errors = appError.Fields
	case apperr.KindAuth:
		envelope.AuthError = appError.Message
	case apperr.KindRateLimited:
		envelope.AuthError = appError.Message
		if appError.RetryAfter > 0 {
			writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(appError.RetryAfter))
		}
	case apperr.KindToken:
		envelope.TokenError = appError.Message
	default:
		envelope.Type = ""
		envelope.Error = appError.Message
		envelope.Code = appError.Code
	}

	JSON(writer, appError.HTTPStatus, envelope)
}
