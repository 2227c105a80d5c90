// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the persistence contract for accounts.
type UserRepository interface {

	/*
		Create persists a new account.

		Returns:
		  - error: apperr.Conflict when the e-mail is taken
	*/
	Create(context context.Context, user *User) error

	// FindByID retrieves an account by its UUID. Missing rows yield ErrNotFound.
	FindByID(context context.Context, id string) (*User, error)

	// FindByEmail retrieves an account by e-mail, case-insensitively.
	FindByEmail(context context.Context, email string) (*User, error)

	// UpdatePassword replaces the stored bcrypt hash.
	UpdatePassword(context context.Context, id, passwordHash string) error

	// MarkVerified flags the account's e-mail as confirmed.
	MarkVerified(context context.Context, id string) error
}

// # Short-Lived Codes

// CodeRepository stores expiring secrets (verification codes, reset
// tokens) keyed by an opaque string.
type CodeRepository interface {

	// Set stores value under key for ttl, replacing any previous value.
	Set(context context.Context, key, value string, ttl time.Duration) error

	// Get returns the value under key, or ErrNotFound when absent or expired.
	Get(context context.Context, key string) (string, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(context context.Context, key string) error
}
