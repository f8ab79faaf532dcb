// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// AuthAccount links a user to their login email. The password hash is
// nullable and unused; login is OTP-only.
type AuthAccount struct { //nolint:govet // fieldalignment: readability over optimization
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash *string    `db:"password_hash" json:"-"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// AuthOtp is a single login code. Rows are never deleted; every verification
// path except natural expiry ends with used=true.
type AuthOtp struct { //nolint:govet // fieldalignment: readability over optimization
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	CodeHash  string    `db:"code_hash" json:"-"` // SHA256 hash of the 6-digit code
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Attempts  int       `db:"attempts" json:"attempts"`
	Used      bool      `db:"used" json:"used"`
	UserID    *string   `db:"user_id" json:"user_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AuthSession is a server-side session. Valid iff !Revoked and ExpiresAt
// is in the future.
type AuthSession struct { //nolint:govet // fieldalignment: readability over optimization
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Revoked   bool      `db:"revoked" json:"revoked"`
	IPAddress *string   `db:"ip_address" json:"-"`
	UserAgent *string   `db:"user_agent" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Valid reports whether the session is usable at the given instant.
func (s *AuthSession) Valid(now time.Time) bool {
	return !s.Revoked && s.ExpiresAt.After(now)
}
