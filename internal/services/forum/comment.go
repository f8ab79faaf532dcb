// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package forum

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"codeberg.org/teamhub/qna/internal/apperr"
	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
)

// CreateComment attaches a comment to a question or an answer and notifies
// the parent's author.
func (s *Service) CreateComment(ctx context.Context, user *models.User, parentType, parentID, content string) (*models.Comment, error) {
	switch parentType {
	case models.ParentQuestion:
		if _, err := s.repo.GetQuestion(ctx, parentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperr.New(apperr.NotFound, "Question not found")
			}
			return nil, apperr.Wrap("failed to load question", err)
		}
	case models.ParentAnswer:
		if _, err := s.repo.GetAnswer(ctx, parentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperr.New(apperr.NotFound, "Answer not found")
			}
			return nil, apperr.Wrap("failed to load answer", err)
		}
	default:
		return nil, apperr.New(apperr.Validation, "Invalid parent type")
	}

	comment, err := s.repo.CreateComment(ctx, parentType, parentID, strings.TrimSpace(content), user.ID)
	if err != nil {
		return nil, apperr.Wrap("failed to create comment", err)
	}

	if parentType == models.ParentQuestion {
		err = s.notifier.NotifyQuestionAuthor(ctx, parentID, user.ID,
			models.ActionCommentAdded, models.NotifyEntityComment, comment.ID)
	} else {
		err = s.notifier.NotifyAnswerAuthor(ctx, parentID, user.ID,
			models.ActionCommentAdded, models.NotifyEntityComment, comment.ID)
	}
	if err != nil {
		return nil, apperr.Wrap("failed to notify parent author", err)
	}

	slog.Info("comment_created",
		"comment_id", comment.ID,
		"parent_type", parentType,
		"parent_id", parentID,
		"user_id", user.ID,
	)
	return comment, nil
}
