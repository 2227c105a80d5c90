// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"time"
)

// # Counter Adjustments

// CounterTarget names the adjustable progress counter.
type CounterTarget string

const (
	TargetEpisodes CounterTarget = "episodes"
	TargetChapters CounterTarget = "chapters"
)

// IsValid reports whether t is a known counter.
func (t CounterTarget) IsValid() bool {
	return t == TargetEpisodes || t == TargetChapters
}

// CounterAction is the adjustment applied to a counter.
type CounterAction string

const (
	ActionIncrement CounterAction = "increment"
	ActionDecrement CounterAction = "decrement"
	ActionSet       CounterAction = "set"
)

// IsValid reports whether a is a known action.
func (a CounterAction) IsValid() bool {
	return a == ActionIncrement || a == ActionDecrement || a == ActionSet
}

// CounterState is the result of an adjustment.
type CounterState struct {
	Episodes int `json:"episodes"`
	Chapters int `json:"chapters"`
}

// # Blog Data Access

// BlogRepository defines the data access contract for catalogue entries.
// Every method addresses entries by their external blogId.
type BlogRepository interface {
	ViewIncrementer

	/*
		List returns one page of entries matching the query, and the number of
		entries matching the filter across all pages.

		Parameters:
		  - context: context.Context
		  - query: ListQuery (validated, canonical sort)

		Returns:
		  - []*Blog: Entries without per-user ratings
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	List(context context.Context, query ListQuery) ([]*Blog, int, error)

	/*
		FindByID returns the entry with the given blogId, per-user ratings and
		author included.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, blogID string) (*Blog, error)

	// FindBySlug is [BlogRepository.FindByID] keyed by slug.
	FindBySlug(context context.Context, slug string) (*Blog, error)

	// Create persists a fully populated entry. A duplicate blogId or slug
	// yields apperr.Conflict.
	Create(context context.Context, blog *Blog) error

	// Update writes the fields patch sets, reading their values from blog,
	// and refreshes blog's updatedAt, counters, views and rating aggregates.
	Update(context context.Context, blog *Blog, patch BlogPatch) error

	// Delete removes the entry together with its ratings and comments.
	Delete(context context.Context, blogID string) error

	/*
		AdjustCounter applies action to the target counter atomically.
		Decrements never go below zero.

		Returns:
		  - CounterState: Both counters after the write
		  - error: apperr.NotFound if missing
	*/
	AdjustCounter(context context.Context, blogID string, target CounterTarget, action CounterAction, value int) (CounterState, error)

	/*
		UpsertRating stores userID's rating and recomputes the entry's
		aggregates in one atomic unit, so concurrent submissions from
		different readers are never lost.

		Returns:
		  - RatingSummary: Aggregates after the write
		  - error: apperr.NotFound if the entry is missing
	*/
	UpsertRating(context context.Context, blogID, userID string, rating float64) (RatingSummary, error)

	// TopN returns up to limit entries in the section's order,
	// restricted to category when non-empty. Authors carry usernames only.
	TopN(context context.Context, section Section, category Category, now time.Time, limit int) ([]*Blog, error)

	// ReconcileRatings rewrites stored aggregates that disagree with the
	// rating rows and returns how many entries were corrected.
	ReconcileRatings(context context.Context) (int, error)

	// ResolveID maps a blogId or slug to the blogId.
	ResolveID(context context.Context, identifier string) (string, error)
}
