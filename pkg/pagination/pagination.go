// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads page and limit from list queries (items, history)
// and builds the meta block returned next to the rows.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip for the page.
func (p Params) Offset() int {
	return max(p.Page-1, 0) * p.Limit
}

// Meta describes the page that was returned.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta rounds the page count up; a zero limit yields zero pages.
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads ?page= and ?limit=. Missing or unparsable values, a page
// below 1 and a limit outside 1..MaxLimit fall back to the defaults.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	params := Params{Page: DefaultPage, Limit: DefaultLimit}
	if page, err := strconv.Atoi(query.Get("page")); err == nil && page >= 1 {
		params.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil && limit >= 1 && limit <= MaxLimit {
		params.Limit = limit
	}
	return params
}
