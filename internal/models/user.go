// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package models defines the database entities of the Q&A forum.
package models

import "time"

// Roles. Managers bypass ownership checks on content they did not author.
const (
	RoleUser    = "USER"
	RoleManager = "MANAGER"
)

type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Role       string    `db:"role" json:"role"`
	JobTitle   *string   `db:"job_title" json:"job_title,omitempty"`
	Department *string   `db:"department" json:"department,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// IsManager reports whether the user holds the MANAGER role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// UserSummary is the author shape embedded in API responses.
type UserSummary struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
