// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains the JSON HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	authsvc "codeberg.org/teamhub/qna/internal/services/auth"
	"codeberg.org/teamhub/qna/internal/services/forum"
	"codeberg.org/teamhub/qna/internal/services/notify"
	"codeberg.org/teamhub/qna/internal/services/profile"
	"codeberg.org/teamhub/qna/internal/services/session"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	auth     *authsvc.Service
	sessions *session.Manager
	forum    *forum.Service
	notify   *notify.Dispatcher
	profiles *profile.Service
	validate *validator.Validate
}

// New creates a new Handlers instance.
func New(auth *authsvc.Service, sessions *session.Manager, forumService *forum.Service,
	dispatcher *notify.Dispatcher, profiles *profile.Service,
) *Handlers {
	return &Handlers{
		auth:     auth,
		sessions: sessions,
		forum:    forumService,
		notify:   dispatcher,
		profiles: profiles,
		validate: newValidator(),
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
