// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/auth"
	"codeberg.org/teamhub/qna/internal/repository"
)

// GetProfile returns the caller's profile with contribution counts.
func (h *Handlers) GetProfile(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	prof, err := h.profiles.Get(c.Request().Context(), user.ID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": prof})
}

type updateProfileRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=100"`
	JobTitle   *string `json:"job_title" validate:"omitempty,max=100"`
	Department *string `json:"department" validate:"omitempty,max=100"`
}

// UpdateProfile applies a partial update to the caller's profile. An empty
// string clears the optional fields.
func (h *Handlers) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return renderError(c, apperr.New(apperr.Validation, "Invalid request body"))
	}
	if err := h.validate.Struct(req); err != nil {
		return renderError(c, validationError(err))
	}

	upd := repository.ProfileUpdate{Name: req.Name}
	if req.JobTitle != nil {
		if strings.TrimSpace(*req.JobTitle) == "" {
			upd.ClearJobTitle = true
		} else {
			upd.JobTitle = req.JobTitle
		}
	}
	if req.Department != nil {
		if strings.TrimSpace(*req.Department) == "" {
			upd.ClearDepartment = true
		} else {
			upd.Department = req.Department
		}
	}

	user := auth.GetUser(c.Request().Context())
	prof, err := h.profiles.Update(c.Request().Context(), user.ID, upd)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": prof})
}
