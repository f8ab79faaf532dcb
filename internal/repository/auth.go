// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/teamhub/qna/internal/models"
)

// CreateOtp inserts a new OTP row. userID links the OTP to an existing
// account when one is known for the email.
func (r *Repository) CreateOtp(ctx context.Context, email, codeHash string, expiresAt time.Time, userID *string) (*models.AuthOtp, error) {
	otp := &models.AuthOtp{
		ID:        uuid.NewString(),
		Email:     email,
		CodeHash:  codeHash,
		ExpiresAt: expiresAt,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_otps (id, email, code_hash, expires_at, attempts, used, user_id, created_at)
		 VALUES (?, ?, ?, ?, 0, 0, ?, ?)`,
		otp.ID, otp.Email, otp.CodeHash, otp.ExpiresAt, otp.UserID, otp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return otp, nil
}

// HasRecentUnusedOtp reports whether an unused OTP for the email was created
// at or after the given instant. This is the persisted-row rate limit, so it
// holds across multiple server processes.
func (r *Repository) HasRecentUnusedOtp(ctx context.Context, email string, since time.Time) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM auth_otps WHERE email = ? AND used = 0 AND created_at >= ?`,
		email, since)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LatestValidOtp returns the most recently created unused, unexpired OTP for
// the email, or ErrNotFound.
func (r *Repository) LatestValidOtp(ctx context.Context, email string, now time.Time) (*models.AuthOtp, error) {
	var otp models.AuthOtp
	err := r.db.GetContext(ctx, &otp,
		`SELECT * FROM auth_otps WHERE email = ? AND used = 0 AND expires_at > ?
		 ORDER BY created_at DESC LIMIT 1`,
		email, now)
	if err != nil {
		return nil, wrapError(err)
	}
	return &otp, nil
}

// IncrementOtpAttempts bumps the attempt counter of an OTP.
func (r *Repository) IncrementOtpAttempts(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE auth_otps SET attempts = attempts + 1 WHERE id = ?`, id)
	return err
}

// MarkOtpUsed flips the used flag. Used OTPs are never selectable again.
func (r *Repository) MarkOtpUsed(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE auth_otps SET used = 1 WHERE id = ?`, id)
	return err
}

// CreateSession inserts a new session row.
func (r *Repository) CreateSession(ctx context.Context, userID, token string, expiresAt time.Time, ipAddress, userAgent *string) (*models.AuthSession, error) {
	session := &models.AuthSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_sessions (id, user_id, token, expires_at, revoked, ip_address, user_agent, created_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?, ?)`,
		session.ID, session.UserID, session.Token, session.ExpiresAt,
		session.IPAddress, session.UserAgent, session.CreatedAt)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetSessionByToken retrieves a session by its opaque token.
func (r *Repository) GetSessionByToken(ctx context.Context, token string) (*models.AuthSession, error) {
	var session models.AuthSession
	if err := r.db.GetContext(ctx, &session, `SELECT * FROM auth_sessions WHERE token = ?`, token); err != nil {
		return nil, wrapError(err)
	}
	return &session, nil
}

// RevokeSession marks the session with the given token revoked. Revoking an
// unknown or already-revoked token is not an error.
func (r *Repository) RevokeSession(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE auth_sessions SET revoked = 1 WHERE token = ?`, token)
	return err
}
