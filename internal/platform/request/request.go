// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.

Browser forms post either url-encoded or multipart bodies while API clients
send JSON; [DecodeForm] accepts all three into the same struct. Fields are
matched by their `form` tag for form bodies and their `json` tag for JSON.
*/
package requestutil

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/ajg/form"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/taibuivan/hms/internal/platform/apperr"
	"github.com/taibuivan/hms/internal/platform/ctxutil"
	"github.com/taibuivan/hms/internal/platform/validate"
)

// maxMultipartMemory bounds the in-memory part of a multipart form.
const maxMultipartMemory = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := render.DecodeJSON(request.Body, target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeForm decodes a form submission or a JSON body into target.

Unknown form keys are ignored so that extra inputs (submit buttons, CSRF
fields) never fail a submission.
*/
func DecodeForm(request *http.Request, target any) error {
	if render.GetRequestContentType(request) == render.ContentTypeJSON {
		return DecodeJSON(request, target)
	}

	values, err := formValues(request)
	if err != nil {
		return validate.ErrInvalidJSON
	}

	decoder := form.NewDecoder(nil)
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.DecodeValues(target, values); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// formValues parses url-encoded and multipart bodies alike.
func formValues(request *http.Request) (url.Values, error) {
	// ParseMultipartForm parses url-encoded bodies before reporting ErrNotMultipart.
	err := request.ParseMultipartForm(maxMultipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	return request.PostForm, nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
RequiredUserID returns the ID of the session user placed in context by the
RequireUser middleware.

Returns:
  - string: User UUID
  - error: apperr.Auth if the request is anonymous
*/
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.GetUserID(request.Context())
	if userID == "" {
		return "", apperr.Auth("Authentication required")
	}
	return userID, nil
}
