// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 1 * time.Hour

	// OTPTTL is how long an e-mail verification code stays valid.
	OTPTTL = 10 * time.Minute

	// OTPDigits is the length of the numeric verification code.
	OTPDigits = 6

	// ResetTokenTTL is the duration a password reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// GeneratedPasswordLength is the byte length of a generated password
	// (hex encoded, so twice as many characters).
	GeneratedPasswordLength = 8
)

// # Credential Limits

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// CodeVerificationRequired marks a login refused because the e-mail address
// has not been confirmed yet. It is served with 403.
const CodeVerificationRequired = "VERIFICATION_REQUIRED"
