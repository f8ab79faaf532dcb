// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Comment parent variants. A comment hangs off a question or an answer,
// referenced by type + id.
const (
	ParentQuestion = "QUESTION"
	ParentAnswer   = "ANSWER"
)

type Comment struct { //nolint:govet // fieldalignment: readability over optimization
	ID         string    `db:"id" json:"id"`
	ParentType string    `db:"parent_type" json:"parent_type"`
	ParentID   string    `db:"parent_id" json:"parent_id"`
	Content    string    `db:"content" json:"content"`
	CreatedBy  string    `db:"created_by" json:"created_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CommentWithAuthor is a comment row joined with its author name.
type CommentWithAuthor struct { //nolint:govet // fieldalignment: readability over optimization
	Comment
	AuthorName string `db:"author_name" json:"-"`
}

// Author returns the embedded author summary.
func (c *CommentWithAuthor) Author() UserSummary {
	return UserSummary{ID: c.CreatedBy, Name: c.AuthorName}
}
