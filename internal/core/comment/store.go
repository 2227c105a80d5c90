// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		ListByBlog returns every comment on an entry, newest first.

		Parameters:
		  - context: context.Context
		  - blogID: string (UUID)

		Returns:
		  - []*Comment: Comments with their author username
		  - error: Database retrieval failures
	*/
	ListByBlog(context context.Context, blogID string) ([]*Comment, error)

	/*
		FindByID retrieves a single comment.

		Returns:
		  - *Comment: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Create persists a comment and fills its author username and
		creation time.

		Returns:
		  - error: ErrNotFound when the entry or account is gone
	*/
	Create(context context.Context, comment *Comment) error

	// Delete removes a comment. Missing rows yield ErrNotFound.
	Delete(context context.Context, id string) error
}
