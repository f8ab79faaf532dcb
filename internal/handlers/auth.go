// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/auth"
	authsvc "codeberg.org/teamhub/qna/internal/services/auth"
)

type requestOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,min=2,max=100"`
}

// RequestOtp issues a login code for the email.
func (h *Handlers) RequestOtp(c echo.Context) error {
	var req requestOtpRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}

	result, err := h.auth.RequestOtp(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidEmail):
			return renderError(c, apperr.New(apperr.Validation, "Invalid email address"))
		case errors.Is(err, authsvc.ErrRateLimited):
			return renderError(c, apperr.New(apperr.RateLimited, "Please wait before requesting another code"))
		default:
			return renderError(c, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Verification code sent",
		"isNewUser":    result.IsNewUser,
		"requiresName": result.RequiresName,
	})
}

type verifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
	Name  string `json:"name" validate:"omitempty,min=2,max=100"`
}

// VerifyOtp checks the code, creates the user on first login and sets the
// session cookie.
func (h *Handlers) VerifyOtp(c echo.Context) error {
	var req verifyOtpRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}

	ip := c.RealIP()
	ua := c.Request().UserAgent()

	user, sess, err := h.auth.VerifyOtp(c.Request().Context(), req.Email, req.Code, req.Name, &ip, &ua)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidOrExpired):
			return renderError(c, apperr.New(apperr.Validation, "Invalid or expired code"))
		case errors.Is(err, authsvc.ErrTooManyAttempts):
			return renderError(c, apperr.New(apperr.Validation, "Too many attempts, please request a new code"))
		case errors.Is(err, authsvc.ErrInvalidCode):
			return renderError(c, apperr.New(apperr.Validation, "Invalid code"))
		case errors.Is(err, authsvc.ErrNameRequired):
			return renderError(c, apperr.New(apperr.Validation, "Name is required for new users"))
		default:
			return renderError(c, err)
		}
	}

	if err := h.sessions.SetToken(c, sess.Token, sess.ExpiresAt); err != nil {
		return renderError(c, apperr.Wrap("failed to set session cookie", err))
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// Logout revokes the current session and clears the cookie. Safe to call
// without a session.
func (h *Handlers) Logout(c echo.Context) error {
	token := auth.GetSessionToken(c.Request().Context())
	if err := h.auth.Logout(c.Request().Context(), token); err != nil {
		return renderError(c, apperr.Wrap("failed to revoke session", err))
	}

	h.sessions.Clear(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}
