// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/apperr"
)

// statusFor maps an error kind to its HTTP status. Conflict maps to 400;
// failed domain preconditions are reported as bad requests.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation, apperr.Conflict:
		return http.StatusBadRequest
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// renderError writes the JSON error body. Internal errors are logged and
// their message replaced, so persistence details never reach clients.
func renderError(c echo.Context, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.Internal {
		return c.JSON(statusFor(appErr.Kind), map[string]string{"error": appErr.Msg})
	}

	slog.Error("request failed",
		"method", c.Request().Method,
		"uri", c.Request().RequestURI,
		"error", err,
	)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
