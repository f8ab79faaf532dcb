// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// generateOtpCode returns a cryptographically random 6-digit code,
// left-padded with zeros.
func generateOtpCode() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[1:]); err != nil {
		return "", err
	}
	num := binary.BigEndian.Uint32(buf[:]) % 1000000
	return fmt.Sprintf("%06d", num), nil
}

// generateSessionToken returns a 32-byte random token as hex.
func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// hashCode computes the SHA256 hash of an OTP code for storage.
func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
