// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Notification action types.
const (
	ActionAnswerAdded  = "ANSWER_ADDED"
	ActionCommentAdded = "COMMENT_ADDED"
	ActionUpvote       = "UPVOTE"
	ActionEdited       = "EDITED"
	ActionMarkResolved = "MARK_RESOLVED"
	ActionMarkReopened = "MARK_REOPENED"
)

// Notification entity types.
const (
	NotifyEntityQuestion = "QUESTION"
	NotifyEntityAnswer   = "ANSWER"
	NotifyEntityComment  = "COMMENT"
)

// Notification records activity on a user's content. Self-notifications
// (recipient == actor) are suppressed at creation and never persisted.
type Notification struct { //nolint:govet // fieldalignment: readability over optimization
	ID          string    `db:"id" json:"id"`
	RecipientID string    `db:"recipient_id" json:"recipient_id"`
	ActorID     string    `db:"actor_id" json:"actor_id"`
	ActionType  string    `db:"action_type" json:"action_type"`
	EntityType  string    `db:"entity_type" json:"entity_type"`
	EntityID    string    `db:"entity_id" json:"entity_id"`
	IsRead      bool      `db:"is_read" json:"is_read"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NotificationWithActor is a notification row joined with the actor's name.
type NotificationWithActor struct { //nolint:govet // fieldalignment: readability over optimization
	Notification
	ActorName string `db:"actor_name" json:"-"`
}

// Actor returns the embedded actor summary.
func (n *NotificationWithActor) Actor() UserSummary {
	return UserSummary{ID: n.ActorID, Name: n.ActorName}
}
