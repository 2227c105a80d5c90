// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements reader identity: registration with e-mail
verification, login, and password recovery.

# Architecture

  - Service: Orchestrates the account flows and their e-mail side effects.
  - Repository: Postgres for accounts, Redis for short-lived codes.
  - Security: bcrypt password hashes and RS256-signed access tokens.
*/
package auth

import (
	"time"

	"github.com/taibuivan/weebtsuki/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	IsVerified   bool         `json:"isEmailVerified"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// # Field Identifiers

const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldUserID          = "userId"
	FieldOTP             = "otp"
	FieldToken           = "token"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)
