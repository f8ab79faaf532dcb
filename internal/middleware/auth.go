// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware provides the HTTP authentication middleware.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/auth"
	authsvc "codeberg.org/teamhub/qna/internal/services/auth"
	"codeberg.org/teamhub/qna/internal/services/session"
)

// LoadUser resolves the session cookie to a user and stores both the user and
// the raw token in the request context. An invalid or expired session is
// treated as anonymous, never as an error.
func LoadUser(sessions *session.Manager, authService *authsvc.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := sessions.Token(c)
			if !ok {
				return next(c)
			}

			ctx := auth.SetSessionToken(c.Request().Context(), token)

			user, err := authService.CurrentUser(ctx, token)
			if err != nil {
				slog.Error("failed to resolve session", "error", err)
			} else if user != nil {
				ctx = auth.SetUser(ctx, user)
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAuth rejects requests without an authenticated user.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.IsAuthenticated(c.Request().Context()) {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Authentication required",
				})
			}
			return next(c)
		}
	}
}
