// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements the email OTP login flow and session lifecycle.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
	"codeberg.org/teamhub/qna/internal/services/email"
)

// OTP and session parameters.
const (
	OtpLength       = 6
	OtpExpiry       = 10 * time.Minute
	OtpMaxAttempts  = 3
	OtpRateLimit    = time.Minute
	SessionLifetime = 7 * 24 * time.Hour
	minNameLength   = 2
)

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrRateLimited      = errors.New("please wait before requesting another code")
	ErrInvalidOrExpired = errors.New("invalid or expired code")
	ErrTooManyAttempts  = errors.New("too many attempts, please request a new code")
	ErrInvalidCode      = errors.New("invalid code")
	ErrNameRequired     = errors.New("name is required for new users")
)

type Service struct {
	repo   *repository.Repository
	mailer email.Mailer
}

// NewService creates the auth service. mailer may be nil, in which case OTP
// codes are only logged.
func NewService(repo *repository.Repository, mailer email.Mailer) *Service {
	return &Service{repo: repo, mailer: mailer}
}

// OtpRequestResult tells the client whether it still has to collect a
// display name before verification can succeed.
type OtpRequestResult struct {
	IsNewUser    bool `json:"isNewUser"`
	RequiresName bool `json:"requiresName"`
}

// RequestOtp issues a new login code for the email and delivers it. A second
// request within the rate-limit window fails with ErrRateLimited. Delivery
// failures are logged and do not fail the request, so the response never
// leaks delivery-channel state.
func (s *Service) RequestOtp(ctx context.Context, emailAddr, name string) (*OtpRequestResult, error) {
	if _, err := mail.ParseAddress(emailAddr); err != nil {
		return nil, ErrInvalidEmail
	}

	recent, err := s.repo.HasRecentUnusedOtp(ctx, emailAddr, time.Now().UTC().Add(-OtpRateLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to check OTP rate limit: %w", err)
	}
	if recent {
		slog.Warn("otp_rate_limited", "email", emailAddr)
		return nil, ErrRateLimited
	}

	var userID *string
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	switch {
	case err == nil:
		userID = &user.ID
	case errors.Is(err, repository.ErrNotFound):
		// brand-new email
	default:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	code, err := generateOtpCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP: %w", err)
	}

	expiresAt := time.Now().UTC().Add(OtpExpiry)
	if _, err := s.repo.CreateOtp(ctx, emailAddr, hashCode(code), expiresAt, userID); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	delivered := false
	if s.mailer != nil {
		if err := s.mailer.SendOtp(ctx, emailAddr, code, int(OtpExpiry.Minutes())); err != nil {
			slog.Warn("otp_delivery_failed", "email", emailAddr, "error", err)
		} else {
			delivered = true
		}
	}
	if !delivered {
		slog.Info("otp_code", "email", emailAddr, "code", code)
	}

	slog.Info("otp_requested", "email", emailAddr, "is_new_user", user == nil)

	return &OtpRequestResult{
		IsNewUser:    user == nil,
		RequiresName: user == nil && name == "",
	}, nil
}

// VerifyOtp checks the presented code against the most recent valid OTP for
// the email. On success it creates the user when needed, stamps last_login
// and issues a fresh session.
func (s *Service) VerifyOtp(ctx context.Context, emailAddr, code, name string, ipAddress, userAgent *string) (*models.User, *models.AuthSession, error) {
	now := time.Now().UTC()

	otp, err := s.repo.LatestValidOtp(ctx, emailAddr, now)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("otp_verify_failed", "email", emailAddr, "reason", "no_valid_otp")
			return nil, nil, ErrInvalidOrExpired
		}
		return nil, nil, fmt.Errorf("failed to look up OTP: %w", err)
	}

	if otp.Attempts >= OtpMaxAttempts {
		if err := s.repo.MarkOtpUsed(ctx, otp.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to exhaust OTP: %w", err)
		}
		slog.Warn("otp_verify_failed", "email", emailAddr, "reason", "too_many_attempts")
		return nil, nil, ErrTooManyAttempts
	}

	if hashCode(code) != otp.CodeHash {
		if err := s.repo.IncrementOtpAttempts(ctx, otp.ID); err != nil {
			return nil, nil, fmt.Errorf("failed to record attempt: %w", err)
		}
		slog.Warn("otp_verify_failed", "email", emailAddr, "reason", "code_mismatch")
		return nil, nil, ErrInvalidCode
	}

	// Single-use: even a second presentation of the correct code must fail.
	if err := s.repo.MarkOtpUsed(ctx, otp.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to mark OTP used: %w", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if errors.Is(err, repository.ErrNotFound) {
		if len(name) < minNameLength {
			return nil, nil, ErrNameRequired
		}
		user, err = s.repo.CreateUserWithEmail(ctx, name, emailAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("user_created", "user_id", user.ID, "email", emailAddr)
	} else if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, nil, fmt.Errorf("failed to update last login: %w", err)
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	session, err := s.repo.CreateSession(ctx, user.ID, token, now.Add(SessionLifetime), ipAddress, userAgent)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("login_success", "user_id", user.ID, "email", emailAddr)
	return user, session, nil
}

// Logout revokes the session with the given token. Revoking an unknown or
// already-revoked token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.RevokeSession(ctx, token)
}

// CurrentUser resolves a session token to its user. Returns (nil, nil) when
// the token is unknown, revoked or expired — unauthenticated is not an error.
func (s *Service) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.repo.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if !session.Valid(time.Now().UTC()) {
		return nil, nil
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}
