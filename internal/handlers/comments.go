// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/auth"
)

type createCommentRequest struct {
	ParentType string `json:"parent_type" validate:"required,oneof=QUESTION ANSWER"`
	ParentID   string `json:"parent_id" validate:"required"`
	Content    string `json:"content" validate:"required,max=1000"`
}

// CreateComment posts a comment on a question or an answer.
func (h *Handlers) CreateComment(c echo.Context) error {
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}

	user := auth.GetUser(c.Request().Context())
	comment, err := h.forum.CreateComment(c.Request().Context(), user, req.ParentType, req.ParentID, req.Content)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
}
