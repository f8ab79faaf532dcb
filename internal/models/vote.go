// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Vote target variants. Only ANSWER votes feed the denormalized counter;
// COMMENT votes are recorded but never counted.
const (
	EntityAnswer  = "ANSWER"
	EntityComment = "COMMENT"
)

// Vote is one upvote by one user on one target. The (entity_type, entity_id,
// user_id) triple is unique, which makes repeat votes idempotent.
type Vote struct { //nolint:govet // fieldalignment: readability over optimization
	ID         string    `db:"id" json:"id"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   string    `db:"entity_id" json:"entity_id"`
	UserID     string    `db:"user_id" json:"user_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
