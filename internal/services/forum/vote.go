// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package forum

import (
	"context"
	"errors"
	"log/slog"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
)

// contentOwner resolves the author of a votable entity.
func (s *Service) contentOwner(ctx context.Context, entityType, entityID string) (string, error) {
	switch entityType {
	case models.EntityAnswer:
		answer, err := s.repo.GetAnswer(ctx, entityID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", apperr.New(apperr.NotFound, "Answer not found")
			}
			return "", apperr.Wrap("failed to load answer", err)
		}
		return answer.CreatedBy, nil
	case models.EntityComment:
		comment, err := s.repo.GetComment(ctx, entityID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", apperr.New(apperr.NotFound, "Comment not found")
			}
			return "", apperr.Wrap("failed to load comment", err)
		}
		return comment.CreatedBy, nil
	default:
		return "", apperr.New(apperr.Validation, "Invalid entity type")
	}
}

// Vote records an upvote. Repeated votes are accepted and change nothing, so
// a client retry can never double-count. The content author is notified only
// when a vote is actually created.
func (s *Service) Vote(ctx context.Context, user *models.User, entityType, entityID string) error {
	owner, err := s.contentOwner(ctx, entityType, entityID)
	if err != nil {
		return err
	}
	if owner == user.ID {
		return apperr.New(apperr.Conflict, "Cannot vote on your own content")
	}

	created, err := s.repo.CreateVote(ctx, entityType, entityID, user.ID)
	if err != nil {
		return apperr.Wrap("failed to create vote", err)
	}
	if !created {
		return nil
	}

	if err := s.notifier.Dispatch(ctx, owner, user.ID,
		models.ActionUpvote, entityType, entityID); err != nil {
		return apperr.Wrap("failed to notify content author", err)
	}

	slog.Info("vote_created", "entity_type", entityType, "entity_id", entityID, "user_id", user.ID)
	return nil
}

// Unvote removes the user's vote. Removing a vote that does not exist is a
// no-op.
func (s *Service) Unvote(ctx context.Context, user *models.User, entityType, entityID string) error {
	if _, err := s.contentOwner(ctx, entityType, entityID); err != nil {
		return err
	}

	removed, err := s.repo.DeleteVote(ctx, entityType, entityID, user.ID)
	if err != nil {
		return apperr.Wrap("failed to delete vote", err)
	}
	if removed {
		slog.Info("vote_removed", "entity_type", entityType, "entity_id", entityID, "user_id", user.ID)
	}
	return nil
}
