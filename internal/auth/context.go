// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import (
	"context"

	"codeberg.org/teamhub/qna/internal/ctxkeys"
	"codeberg.org/teamhub/qna/internal/models"
)

// SetUser returns a context carrying the authenticated user.
func SetUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxkeys.User{}, user)
}

// GetUser returns the authenticated user from the context, or nil if not
// authenticated.
func GetUser(ctx context.Context) *models.User {
	if user, ok := ctx.Value(ctxkeys.User{}).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated returns true if the context has an authenticated user.
func IsAuthenticated(ctx context.Context) bool {
	return GetUser(ctx) != nil
}

// SetSessionToken returns a context carrying the raw session token.
func SetSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxkeys.SessionToken{}, token)
}

// GetSessionToken returns the raw session token of the request, or "".
func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(ctxkeys.SessionToken{}).(string); ok {
		return token
	}
	return ""
}
