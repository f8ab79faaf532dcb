// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/teamhub/qna/internal/models"
)

// CreateNotification inserts a notification row. Callers go through the
// notify service, which suppresses self-notifications before reaching here.
func (r *Repository) CreateNotification(ctx context.Context, recipientID, actorID, actionType, entityType, entityID string) (*models.Notification, error) {
	notification := &models.Notification{
		ID:          uuid.NewString(),
		RecipientID: recipientID,
		ActorID:     actorID,
		ActionType:  actionType,
		EntityType:  entityType,
		EntityID:    entityID,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, recipient_id, actor_id, action_type, entity_type, entity_id, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		notification.ID, notification.RecipientID, notification.ActorID,
		notification.ActionType, notification.EntityType, notification.EntityID,
		notification.CreatedAt)
	if err != nil {
		return nil, err
	}
	return notification, nil
}

// GetNotification retrieves a notification by ID.
func (r *Repository) GetNotification(ctx context.Context, id string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.GetContext(ctx, &notification, `SELECT * FROM notifications WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &notification, nil
}

// ListNotifications returns a recipient's notifications, newest first.
func (r *Repository) ListNotifications(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]models.NotificationWithActor, error) {
	query := `SELECT n.*, u.name AS actor_name FROM notifications n JOIN users u ON u.id = n.actor_id
		WHERE n.recipient_id = ?`
	args := []any{recipientID}

	if unreadOnly {
		query += ` AND n.is_read = 0`
	}
	query += ` ORDER BY n.created_at DESC LIMIT ?`
	args = append(args, limit)

	var notifications []models.NotificationWithActor
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, err
}

// MarkNotificationRead flips the read flag; marking twice is a no-op.
func (r *Repository) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = 1 WHERE id = ?`, id)
	return err
}

// MarkAllNotificationsRead flips every unread notification of a recipient.
func (r *Repository) MarkAllNotificationsRead(ctx context.Context, recipientID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE recipient_id = ? AND is_read = 0`, recipientID)
	return err
}

// CountUnreadNotifications returns the recipient's unread count.
func (r *Repository) CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM notifications WHERE recipient_id = ? AND is_read = 0`, recipientID)
	return count, err
}
