// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/auth"
)

type voteRequest struct {
	EntityType string `json:"entity_type" validate:"required,oneof=ANSWER COMMENT"`
	EntityID   string `json:"entity_id" validate:"required"`
}

// Vote records an upvote; repeat votes succeed without effect.
func (h *Handlers) Vote(c echo.Context) error {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}

	user := auth.GetUser(c.Request().Context())
	if err := h.forum.Vote(c.Request().Context(), user, req.EntityType, req.EntityID); err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vote recorded"})
}

// Unvote removes an upvote; removing an absent vote succeeds.
func (h *Handlers) Unvote(c echo.Context) error {
	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}

	user := auth.GetUser(c.Request().Context())
	if err := h.forum.Unvote(c.Request().Context(), user, req.EntityType, req.EntityID); err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vote removed"})
}
