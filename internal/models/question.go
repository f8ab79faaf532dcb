// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Question lifecycle. OPEN flips to ACTIVE on the first answer; RESOLVED is
// manual and requires at least one answer; reopening goes back to ACTIVE.
const (
	StatusOpen     = "OPEN"
	StatusActive   = "ACTIVE"
	StatusResolved = "RESOLVED"
)

// PredefinedTags is the fixed tag vocabulary. Questions carry 2-4 of these.
var PredefinedTags = []string{
	"engineering",
	"product",
	"design",
	"devops",
	"security",
	"frontend",
	"backend",
	"mobile",
	"data",
	"infrastructure",
	"onboarding",
	"processes",
	"tooling",
	"documentation",
	"general",
}

// IsPredefinedTag reports whether tag is part of the fixed vocabulary.
func IsPredefinedTag(tag string) bool {
	for _, t := range PredefinedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagList stores a tag set as a JSON array in a TEXT column.
type TagList []string

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(t))
	case []byte:
		return json.Unmarshal(v, (*[]string)(t))
	default:
		return fmt.Errorf("cannot scan %T into TagList", src)
	}
}

type Question struct { //nolint:govet // fieldalignment: readability over optimization
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Tags        TagList   `db:"tags" json:"tags"`
	Status      string    `db:"status" json:"status"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// QuestionWithCounts is a listing row with author and child counts.
type QuestionWithCounts struct { //nolint:govet // fieldalignment: readability over optimization
	Question
	AuthorName   string `db:"author_name" json:"-"`
	AnswerCount  int    `db:"answer_count" json:"answer_count"`
	CommentCount int    `db:"comment_count" json:"comment_count"`
}

// Author returns the embedded author summary.
func (q *QuestionWithCounts) Author() UserSummary {
	return UserSummary{ID: q.CreatedBy, Name: q.AuthorName}
}
