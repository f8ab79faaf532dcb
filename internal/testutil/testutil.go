// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"

	"codeberg.org/teamhub/qna/internal/database"
	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a user with an auth account in the database.
func NewTestUser(t *testing.T, repo *repository.Repository, name, email string) *models.User {
	t.Helper()
	user, err := repo.CreateUserWithEmail(context.Background(), name, email)
	require.NoError(t, err)
	return user
}

// NewTestManager creates a user and promotes it to the MANAGER role.
func NewTestManager(t *testing.T, db *sqlx.DB, repo *repository.Repository, name, email string) *models.User {
	t.Helper()
	user := NewTestUser(t, repo, name, email)
	_, err := db.Exec(`UPDATE users SET role = ? WHERE id = ?`, models.RoleManager, user.ID)
	require.NoError(t, err)
	user.Role = models.RoleManager
	return user
}

// NewTestQuestion creates a question for the given user.
func NewTestQuestion(t *testing.T, repo *repository.Repository, createdBy string) *models.Question {
	t.Helper()
	question, err := repo.CreateQuestion(context.Background(),
		"How do we rotate the staging credentials?",
		"The runbook mentions a vault path that no longer exists.",
		models.TagList{"devops", "security"}, createdBy)
	require.NoError(t, err)
	return question
}

// NewTestAnswer creates an answer on a question.
func NewTestAnswer(t *testing.T, repo *repository.Repository, questionID, createdBy string) *models.Answer {
	t.Helper()
	answer, _, err := repo.CreateAnswer(context.Background(), questionID,
		"The path moved to secrets/staging, see the infra README.", createdBy)
	require.NoError(t, err)
	return answer
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
