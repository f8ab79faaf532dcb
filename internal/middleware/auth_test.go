// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/teamhub/qna/internal/auth"
	"codeberg.org/teamhub/qna/internal/config"
	"codeberg.org/teamhub/qna/internal/middleware"
	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
	authsvc "codeberg.org/teamhub/qna/internal/services/auth"
	"codeberg.org/teamhub/qna/internal/services/session"
	"codeberg.org/teamhub/qna/internal/testutil"
)

func authServiceFor(repo *repository.Repository) *authsvc.Service {
	return authsvc.NewService(repo, nil)
}

func newSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(&config.SessionConfig{CookieName: "session_token"}, false)
	require.NoError(t, err)
	return m
}

func TestLoadUser_ValidSession(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "Alice", "alice@company.com")
	sess, err := repo.CreateSession(context.Background(), user.ID, "tok-1",
		time.Now().UTC().Add(time.Hour), nil, nil)
	require.NoError(t, err)

	authService := authServiceFor(repo)
	sessions := newSessionManager(t)

	e := echo.New()
	// Produce a signed cookie the same way the login handler does.
	setCtx, setRec := testutil.NewEchoContext(e, http.MethodPost, "/", nil)
	require.NoError(t, sessions.SetToken(setCtx, sess.Token, sess.ExpiresAt))
	cookie := setRec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *models.User
	handler := middleware.LoadUser(sessions, authService)(func(c echo.Context) error {
		seen = auth.GetUser(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}

func TestLoadUser_MissingCookieIsAnonymous(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	sessions := newSessionManager(t)

	e := echo.New()
	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/questions", nil)

	handler := middleware.LoadUser(sessions, authServiceFor(repo))(func(c echo.Context) error {
		assert.Nil(t, auth.GetUser(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
}

func TestLoadUser_StaleSessionIsAnonymous(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	sessions := newSessionManager(t)

	e := echo.New()
	setCtx, setRec := testutil.NewEchoContext(e, http.MethodPost, "/", nil)
	require.NoError(t, sessions.SetToken(setCtx, "never-issued", time.Now().Add(time.Hour)))

	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	req.AddCookie(setRec.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := middleware.LoadUser(sessions, authServiceFor(repo))(func(c echo.Context) error {
		assert.Nil(t, auth.GetUser(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_Unauthenticated(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/questions", nil)

	handler := middleware.RequireAuth()(func(c echo.Context) error {
		t.Fatal("handler should not run")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Authentication required"}`, rec.Body.String())
}

func TestRequireAuth_Authenticated(t *testing.T) {
	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodPost, "/questions", nil)
	ctx := auth.SetUser(c.Request().Context(), &models.User{ID: "u1"})
	c.SetRequest(c.Request().WithContext(ctx))

	handler := middleware.RequireAuth()(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
