// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/handlers"
	appmiddleware "codeberg.org/teamhub/qna/internal/middleware"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers) {
	requireAuth := appmiddleware.RequireAuth()

	e.GET("/health", h.Health)

	// Auth
	e.POST("/auth/request-otp", h.RequestOtp)
	e.POST("/auth/verify-otp", h.VerifyOtp)
	e.GET("/auth/logout", h.Logout)
	e.POST("/auth/logout", h.Logout)

	// Questions are readable without a session; everything that writes
	// requires one.
	e.GET("/questions", h.ListQuestions)
	e.GET("/questions/:id", h.GetQuestion)
	e.POST("/questions", h.CreateQuestion, requireAuth)
	e.PATCH("/questions/:id", h.UpdateQuestion, requireAuth)
	e.DELETE("/questions/:id", h.DeleteQuestion, requireAuth)
	e.POST("/questions/:id/answers", h.CreateAnswer, requireAuth)
	e.POST("/questions/:id/resolve", h.ResolveQuestion, requireAuth)
	e.POST("/questions/:id/reopen", h.ReopenQuestion, requireAuth)

	// Comments and votes
	e.POST("/comments", h.CreateComment, requireAuth)
	e.POST("/votes", h.Vote, requireAuth)
	e.DELETE("/votes", h.Unvote, requireAuth)

	// Notifications
	e.GET("/notifications", h.ListNotifications, requireAuth)
	e.POST("/notifications/:id/mark-read", h.MarkNotificationRead, requireAuth)
	e.POST("/notifications/mark-all-read", h.MarkAllNotificationsRead, requireAuth)

	// Profile
	e.GET("/profile", h.GetProfile, requireAuth)
	e.PATCH("/profile", h.UpdateProfile, requireAuth)
}
