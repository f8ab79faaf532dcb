// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session manages the signed session-token cookie. The token itself
// is opaque and validated server-side; the securecookie signature only makes
// client-side tampering detectable early.
package session

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"codeberg.org/teamhub/qna/internal/config"
)

// Manager encodes and decodes the session cookie.
type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	secure     bool
}

// NewManager creates a cookie manager. An empty hash key generates an
// ephemeral one, which invalidates all cookies on restart — fine for dev.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	var hashKey []byte
	if cfg.HashKey == "" {
		hashKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil {
			return nil, fmt.Errorf("failed to generate session hash key")
		}
	} else {
		var err error
		hashKey, err = hex.DecodeString(cfg.HashKey)
		if err != nil {
			return nil, fmt.Errorf("invalid session hash key: %w", err)
		}
		if len(hashKey) != 32 {
			return nil, fmt.Errorf("session hash key must be 32 bytes, got %d", len(hashKey))
		}
	}

	return &Manager{
		codec:      securecookie.New(hashKey, nil),
		cookieName: cfg.CookieName,
		secure:     secure,
	}, nil
}

// SetToken writes the signed session cookie.
func (m *Manager) SetToken(c echo.Context, token string, expiresAt time.Time) error {
	encoded, err := m.codec.Encode(m.cookieName, token)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Token reads and verifies the session cookie. Returns false for a missing,
// malformed, or tampered cookie.
func (m *Manager) Token(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	var token string
	if err := m.codec.Decode(m.cookieName, cookie.Value, &token); err != nil {
		return "", false
	}
	return token, true
}

// Clear expires the session cookie.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
