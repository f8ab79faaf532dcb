// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package notify

import (
	"context"
	"errors"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
)

// Inbox listing limits.
const (
	DefaultInboxLimit = 50
	MaxInboxLimit     = 100
)

// Inbox returns the user's notifications, newest first, plus the unread count.
func (d *Dispatcher) Inbox(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.NotificationWithActor, int64, error) {
	if limit < 1 {
		limit = DefaultInboxLimit
	}
	if limit > MaxInboxLimit {
		limit = MaxInboxLimit
	}

	notifications, err := d.repo.ListNotifications(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, 0, apperr.Wrap("failed to list notifications", err)
	}

	unread, err := d.repo.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, 0, apperr.Wrap("failed to count unread notifications", err)
	}
	return notifications, unread, nil
}

// MarkRead marks one of the user's notifications as read. Marking twice is a
// no-op; marking someone else's notification is forbidden.
func (d *Dispatcher) MarkRead(ctx context.Context, userID, notificationID string) error {
	notification, err := d.repo.GetNotification(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.NotFound, "Notification not found")
		}
		return apperr.Wrap("failed to load notification", err)
	}
	if notification.RecipientID != userID {
		return apperr.New(apperr.Forbidden, "Not authorized")
	}

	if err := d.repo.MarkNotificationRead(ctx, notificationID); err != nil {
		return apperr.Wrap("failed to mark notification read", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (d *Dispatcher) MarkAllRead(ctx context.Context, userID string) error {
	if err := d.repo.MarkAllNotificationsRead(ctx, userID); err != nil {
		return apperr.Wrap("failed to mark notifications read", err)
	}
	return nil
}
