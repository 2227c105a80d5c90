// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/taibuivan/weebtsuki/internal/platform/validate"
	"github.com/taibuivan/weebtsuki/pkg/pagination"
	"github.com/taibuivan/weebtsuki/pkg/query"
)

// # Sorting

// SortKey selects one of the fixed list orderings.
type SortKey string

const (
	SortNew     SortKey = "new"
	SortRating  SortKey = "rating"
	SortPopular SortKey = "popular"
	SortUpdated SortKey = "updated"
	SortHot     SortKey = "hot"
)

// sortAliases maps the field names the web client sends to canonical keys.
var sortAliases = map[string]SortKey{
	"createdAt":     SortNew,
	"views":         SortPopular,
	"overallRating": SortRating,
	"updatedAt":     SortUpdated,
}

// orderTerm is one descending key of an ordering, written against the "b"
// alias of core.blog.
type orderTerm string

var (
	byCreatedAt orderTerm = "b.createdat DESC"
	byUpdatedAt orderTerm = "b.updatedat DESC"
	byRelease   orderTerm = "b.releasedate DESC"
	byViews     orderTerm = "b.views DESC"
	byOverall   orderTerm = "b.overallrating DESC"
	byTotal     orderTerm = "b.totalratings DESC"
	byBlended             = orderTerm(fmt.Sprintf("(%g * b.adminrating + %g * b.overallrating) DESC", AdminRatingWeight, UserRatingWeight))

	// byBlogID is appended to every ordering so pages never overlap.
	byBlogID orderTerm = "b.blogid DESC"
)

var sortPlans = map[SortKey][]orderTerm{
	SortRating:  {byOverall, byTotal},
	SortPopular: {byViews, byTotal},
	SortUpdated: {byUpdatedAt},
	SortHot:     {byViews, byUpdatedAt},
	SortNew:     {byCreatedAt},
}

// Canonical resolves aliases and the empty key to a canonical [SortKey].
// Unknown keys are returned unchanged and fail [SortKey.IsValid].
func (key SortKey) Canonical() SortKey {
	trimmed := strings.TrimSpace(string(key))
	if trimmed == "" {
		return SortNew
	}
	if alias, ok := sortAliases[trimmed]; ok {
		return alias
	}
	return SortKey(trimmed)
}

// IsValid reports whether key is a canonical sort key.
func (key SortKey) IsValid() bool {
	_, ok := sortPlans[key]
	return ok
}

// OrderBy renders the ORDER BY list for key, tie-break included.
func (key SortKey) OrderBy() string {
	return renderOrder(sortPlans[key])
}

func renderOrder(terms []orderTerm) string {
	parts := make([]string, 0, len(terms)+1)
	for _, term := range terms {
		parts = append(parts, string(term))
	}
	return strings.Join(append(parts, string(byBlogID)), ", ")
}

// # Filtering

// Filter holds the conjunctive list constraints. Zero values and the "All"
// wildcards impose no constraint.
type Filter struct {
	Category Category
	Genres   []Genre
	Status   Status
	// Query matches title, content or any alternative name, case-insensitively.
	Query string
}

// ParseFilter reads category, genres, status and q from a query string.
// Values are not validated here.
func ParseFilter(values url.Values) Filter {
	var genres []Genre
	for _, genre := range query.Values(values, "genres") {
		genres = append(genres, Genre(genre))
	}

	return Filter{
		Category: Category(strings.TrimSpace(values.Get("category"))),
		Genres:   genres,
		Status:   Status(strings.TrimSpace(values.Get("status"))),
		Query:    strings.TrimSpace(values.Get("q")),
	}
}

// CategoryConstraint returns the category to match, if any.
func (filter Filter) CategoryConstraint() (Category, bool) {
	if filter.Category == "" || filter.Category == CategoryAll {
		return "", false
	}
	return filter.Category, true
}

// StatusConstraint returns the status to match, if any.
func (filter Filter) StatusConstraint() (Status, bool) {
	if filter.Status == "" || filter.Status == StatusAll {
		return "", false
	}
	return filter.Status, true
}

func (filter Filter) validate(validator *validate.Validator) {
	if category, ok := filter.CategoryConstraint(); ok {
		validator.Custom(FieldCategory, !category.IsValid(), "Unknown category")
	}
	if status, ok := filter.StatusConstraint(); ok {
		validator.Custom(FieldStatus, !status.IsValid(), "Unknown status")
	}
	for _, genre := range filter.Genres {
		if !genre.IsValid() {
			validator.Custom(FieldGenres, true, fmt.Sprintf("Unknown genre %q", genre))
		}
	}
}

// # List Query

// ListQuery is a complete list request.
type ListQuery struct {
	Filter Filter
	Sort   SortKey
	Page   pagination.Params
}

// Validate reports every invalid field at once. Sort must already be
// canonical and Page already clamped.
func (listQuery ListQuery) Validate() error {
	validator := &validate.Validator{}

	validator.Custom(FieldPage, listQuery.Page.Page < 1, pagination.ErrInvalidPage.Error())
	validator.Custom(FieldLimit, listQuery.Page.Limit < 1, pagination.ErrInvalidLimit.Error())
	validator.Custom(FieldSortBy, !listQuery.Sort.IsValid(), "Must be one of: new, rating, popular, updated, hot")
	listQuery.Filter.validate(validator)

	return validator.Err()
}

// ListResult is one page of entries and its pagination metadata.
type ListResult struct {
	Blogs      []*Blog         `json:"blogs"`
	Pagination pagination.Meta `json:"pagination"`
}
