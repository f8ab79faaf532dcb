// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/teamhub/qna/internal/config"
	"codeberg.org/teamhub/qna/internal/services/session"
)

func newManager(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(&config.SessionConfig{
		CookieName: "session_token",
		HashKey:    strings.Repeat("ab", 32),
	}, false)
	require.NoError(t, err)
	return m
}

func TestNewManager_KeyValidation(t *testing.T) {
	_, err := session.NewManager(&config.SessionConfig{CookieName: "s", HashKey: "zz"}, false)
	assert.Error(t, err)

	_, err = session.NewManager(&config.SessionConfig{CookieName: "s", HashKey: "abcd"}, false)
	assert.Error(t, err)

	// Empty key generates an ephemeral one.
	_, err = session.NewManager(&config.SessionConfig{CookieName: "s"}, false)
	assert.NoError(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newManager(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, m.SetToken(c, "opaque-token", time.Now().Add(time.Hour)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	// The signed value never carries the raw token in the clear.
	assert.NotContains(t, cookies[0].Value, "opaque-token")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	c = e.NewContext(req, httptest.NewRecorder())

	token, ok := m.Token(c)
	assert.True(t, ok)
	assert.Equal(t, "opaque-token", token)
}

func TestToken_Tampered(t *testing.T) {
	m := newManager(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "forged"})
	c := e.NewContext(req, httptest.NewRecorder())

	_, ok := m.Token(c)
	assert.False(t, ok)
}

func TestToken_Missing(t *testing.T) {
	m := newManager(t)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := m.Token(c)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	m := newManager(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	m.Clear(c)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
