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

// ResolveQuestion marks a question RESOLVED. Only the author or a manager may
// resolve, the question needs at least one answer, and resolving twice fails.
func (s *Service) ResolveQuestion(ctx context.Context, user *models.User, id string) (*models.Question, error) {
	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Question not found")
		}
		return nil, apperr.Wrap("failed to load question", err)
	}

	if !canModify(user, question.CreatedBy) {
		return nil, apperr.New(apperr.Forbidden, "Not authorized")
	}
	if question.Status == models.StatusResolved {
		return nil, apperr.New(apperr.Conflict, "Question is already resolved")
	}

	answers, err := s.repo.CountAnswers(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("failed to count answers", err)
	}
	if answers == 0 {
		return nil, apperr.New(apperr.Conflict, "Cannot resolve a question without answers")
	}

	if err := s.repo.SetQuestionStatus(ctx, id, models.StatusResolved); err != nil {
		return nil, apperr.Wrap("failed to set status", err)
	}

	if err := s.notifier.NotifyOnResolve(ctx, id, user.ID); err != nil {
		return nil, apperr.Wrap("failed to notify on resolve", err)
	}

	updated, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("failed to reload question", err)
	}

	slog.Info("question_resolved", "question_id", id, "user_id", user.ID)
	return updated, nil
}

// ReopenQuestion moves a RESOLVED question back to ACTIVE.
func (s *Service) ReopenQuestion(ctx context.Context, user *models.User, id string) (*models.Question, error) {
	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Question not found")
		}
		return nil, apperr.Wrap("failed to load question", err)
	}

	if !canModify(user, question.CreatedBy) {
		return nil, apperr.New(apperr.Forbidden, "Not authorized")
	}
	if question.Status != models.StatusResolved {
		return nil, apperr.New(apperr.Conflict, "Only resolved questions can be reopened")
	}

	if err := s.repo.SetQuestionStatus(ctx, id, models.StatusActive); err != nil {
		return nil, apperr.Wrap("failed to set status", err)
	}

	if err := s.notifier.NotifyQuestionAuthor(ctx, id, user.ID,
		models.ActionMarkReopened, models.NotifyEntityQuestion, id); err != nil {
		return nil, apperr.Wrap("failed to notify question author", err)
	}

	updated, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("failed to reload question", err)
	}

	slog.Info("question_reopened", "question_id", id, "user_id", user.ID)
	return updated, nil
}
