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

// CreateAnswer inserts an answer. The insert and the OPEN→ACTIVE flip on a
// question's first answer are one transaction in the repository, so the
// answer is never visible on a still-OPEN question. The question author is
// notified unless they answered themselves.
func (s *Service) CreateAnswer(ctx context.Context, user *models.User, questionID, content string) (*models.Answer, error) {
	if _, err := s.repo.GetQuestion(ctx, questionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Question not found")
		}
		return nil, apperr.Wrap("failed to load question", err)
	}

	answer, flipped, err := s.repo.CreateAnswer(ctx, questionID, strings.TrimSpace(content), user.ID)
	if err != nil {
		return nil, apperr.Wrap("failed to create answer", err)
	}

	if err := s.notifier.NotifyQuestionAuthor(ctx, questionID, user.ID,
		models.ActionAnswerAdded, models.NotifyEntityAnswer, answer.ID); err != nil {
		return nil, apperr.Wrap("failed to notify question author", err)
	}

	slog.Info("answer_created",
		"answer_id", answer.ID,
		"question_id", questionID,
		"user_id", user.ID,
		"status_flipped", flipped,
	)
	return answer, nil
}
