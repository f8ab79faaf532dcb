// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Answer to a question. VoteCount is denormalized from the votes table and
// mutated in the same transaction as the vote row.
type Answer struct { //nolint:govet // fieldalignment: readability over optimization
	ID         string    `db:"id" json:"id"`
	QuestionID string    `db:"question_id" json:"question_id"`
	Content    string    `db:"content" json:"content"`
	VoteCount  int       `db:"vote_count" json:"vote_count"`
	CreatedBy  string    `db:"created_by" json:"created_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// AnswerWithAuthor is an answer row joined with its author name.
type AnswerWithAuthor struct { //nolint:govet // fieldalignment: readability over optimization
	Answer
	AuthorName string `db:"author_name" json:"-"`
}

// Author returns the embedded author summary.
func (a *AnswerWithAuthor) Author() UserSummary {
	return UserSummary{ID: a.CreatedBy, Name: a.AuthorName}
}
