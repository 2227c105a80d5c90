// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment manages reader discussion attached to catalogue entries.

# Core Responsibility

  - Discussion: Defines the [Comment] entity and its author projection.
  - Moderation: Only the author or an administrator may remove a comment.

Comments live and die with their entry; deleting an entry removes them.
*/
package comment

import "time"

// # Core Entities

// Author is the public projection of the commenting account.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Comment is a single reader message on an entry.
type Comment struct {
	ID        string    `json:"id"` // UUIDv7
	BlogID    string    `json:"blogId"`
	User      Author    `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Validation Limits

// MaxContentLength bounds a comment body in characters.
const MaxContentLength = 2000

// # Field Identifiers

const (
	FieldContent = "content"
)
