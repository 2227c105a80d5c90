// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateSecureToken returns a hex string built from byteLength random bytes.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken returns the SHA-256 hex digest of a token so raw values are never stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// GenerateOTP returns a numeric one-time password with the given number of digits.
// Leading zeros are preserved.
func GenerateOTP(digits int) (string, error) {
	otp := make([]byte, digits)
	for i := range otp {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("sec: failed to generate otp: %w", err)
		}
		otp[i] = byte('0' + n.Int64())
	}
	return string(otp), nil
}
