// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package profile serves user profiles with their contribution counts.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
)

type Service struct {
	repo *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a user's profile. Any authenticated user can look at any profile.
func (s *Service) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "User not found")
		}
		return nil, apperr.Wrap("failed to load profile", err)
	}
	return profile, nil
}

// Update applies a partial update to the caller's own profile and returns the
// refreshed profile.
func (s *Service) Update(ctx context.Context, userID string, upd repository.ProfileUpdate) (*models.Profile, error) {
	if upd.Name != nil {
		trimmed := strings.TrimSpace(*upd.Name)
		if len(trimmed) < 2 {
			return nil, apperr.New(apperr.Validation, "Name must be at least 2 characters")
		}
		upd.Name = &trimmed
	}

	if err := s.repo.UpdateProfile(ctx, userID, upd); err != nil {
		return nil, apperr.Wrap("failed to update profile", err)
	}

	slog.Info("profile_updated", "user_id", userID)
	return s.Get(ctx, userID)
}
