// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Pages are 1-based. A page or limit below 1 is rejected; a limit above
// [MaxLimit] is capped.
package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

var (
	// ErrInvalidPage is returned when page is not an integer >= 1.
	ErrInvalidPage = errors.New("page must be an integer greater than or equal to 1")
	// ErrInvalidLimit is returned when limit is not an integer >= 1.
	ErrInvalidLimit = errors.New("limit must be an integer greater than or equal to 1")
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Clamped returns p with Limit capped at [MaxLimit].
func (p Params) Clamped() Params {
	p.Limit = min(p.Limit, MaxLimit)
	return p
}

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.Limit < 1 {
		return ErrInvalidLimit
	}
	return nil
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	// Current is the requested 1-based page.
	Current int `json:"current"`
	// Total is the number of pages, ceil(totalItems / limit).
	Total int `json:"total"`
	// HasNext reports whether items exist past this page.
	HasNext bool `json:"hasNext"`
	// TotalItems is the number of items matching the filter.
	TotalItems int `json:"totalItems"`
}

// NewMeta constructs pagination metadata for a response.
//
// returned is the number of items on the current page.
func NewMeta(params Params, returned, totalItems int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (totalItems + params.Limit - 1) / params.Limit
	}

	return Meta{
		Current:    params.Page,
		Total:      totalPages,
		HasNext:    params.Offset()+returned < totalItems,
		TotalItems: totalItems,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
// Absent parameters take their defaults and limit is capped at [MaxLimit].
// Malformed values or values below 1 return [ErrInvalidPage] or
// [ErrInvalidLimit].
func FromRequest(r *http.Request) (Params, error) {
	page, err := parseIntParam(r, "page", DefaultPage)
	if err != nil {
		return Params{}, ErrInvalidPage
	}

	limit, err := parseIntParam(r, "limit", DefaultLimit)
	if err != nil {
		return Params{}, ErrInvalidLimit
	}

	params := Params{Page: page, Limit: limit}.Clamped()
	return params, params.Validate()
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(raw)
}
