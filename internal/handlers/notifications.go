// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/auth"
	"codeberg.org/teamhub/qna/internal/models"
)

type notificationResponse struct {
	models.Notification
	Actor models.UserSummary `json:"actor"`
}

// ListNotifications returns the caller's notifications, newest first.
func (h *Handlers) ListNotifications(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	unreadOnly := c.QueryParam("unread_only") == "true"
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	notifications, unread, err := h.notify.Inbox(c.Request().Context(), user.ID, unreadOnly, limit)
	if err != nil {
		return renderError(c, err)
	}

	items := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, notificationResponse{Notification: n.Notification, Actor: n.Actor()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": items,
		"unreadCount":   unread,
	})
}

// MarkNotificationRead marks one notification as read.
func (h *Handlers) MarkNotificationRead(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if err := h.notify.MarkRead(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead marks every unread notification as read.
func (h *Handlers) MarkAllNotificationsRead(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	if err := h.notify.MarkAllRead(c.Request().Context(), user.ID); err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
