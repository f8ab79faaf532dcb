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

// CreateQuestion inserts a new OPEN question for the user. Input is assumed
// schema-validated; title and description are stored trimmed.
func (s *Service) CreateQuestion(ctx context.Context, user *models.User, title, description string, tags []string) (*models.Question, error) {
	question, err := s.repo.CreateQuestion(ctx,
		strings.TrimSpace(title), strings.TrimSpace(description), models.TagList(tags), user.ID)
	if err != nil {
		return nil, apperr.Wrap("failed to create question", err)
	}

	slog.Info("question_created", "question_id", question.ID, "user_id", user.ID)
	return question, nil
}

// ListQuestions returns a filtered page plus the unpaged total. Page and
// limit are clamped here so handlers can pass query values through.
func (s *Service) ListQuestions(ctx context.Context, filter repository.QuestionFilter) ([]models.QuestionWithCounts, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultPageSize
	}
	if filter.Limit > MaxPageSize {
		filter.Limit = MaxPageSize
	}

	questions, total, err := s.repo.ListQuestions(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Wrap("failed to list questions", err)
	}
	return questions, total, nil
}

// AnswerDetail is an answer together with its comment thread.
type AnswerDetail struct {
	models.AnswerWithAuthor
	Comments []models.CommentWithAuthor
}

// QuestionDetail is the full question page: answers with their comments,
// question comments, and which answers the viewing user has upvoted.
type QuestionDetail struct { //nolint:govet // fieldalignment: readability over optimization
	Question   models.Question
	AuthorName string
	AuthorRole string
	Answers    []AnswerDetail
	Comments   []models.CommentWithAuthor
	UserVotes  map[string]bool
}

// GetQuestionDetail loads the full detail view. user may be nil (anonymous
// read); UserVotes is empty then.
func (s *Service) GetQuestionDetail(ctx context.Context, id string, user *models.User) (*QuestionDetail, error) {
	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.NotFound, "Question not found")
		}
		return nil, apperr.Wrap("failed to load question", err)
	}

	author, err := s.repo.GetUserByID(ctx, question.CreatedBy)
	if err != nil {
		return nil, apperr.Wrap("failed to load question author", err)
	}

	answers, err := s.repo.ListAnswers(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("failed to load answers", err)
	}

	detail := &QuestionDetail{
		Question:   *question,
		AuthorName: author.Name,
		AuthorRole: author.Role,
		Answers:    make([]AnswerDetail, 0, len(answers)),
		UserVotes:  map[string]bool{},
	}

	answerIDs := make([]string, 0, len(answers))
	for _, answer := range answers {
		comments, err := s.repo.ListComments(ctx, models.ParentAnswer, answer.ID)
		if err != nil {
			return nil, apperr.Wrap("failed to load answer comments", err)
		}
		detail.Answers = append(detail.Answers, AnswerDetail{AnswerWithAuthor: answer, Comments: comments})
		answerIDs = append(answerIDs, answer.ID)
	}

	detail.Comments, err = s.repo.ListComments(ctx, models.ParentQuestion, id)
	if err != nil {
		return nil, apperr.Wrap("failed to load question comments", err)
	}

	if user != nil {
		detail.UserVotes, err = s.repo.UserAnswerVotes(ctx, user.ID, answerIDs)
		if err != nil {
			return nil, apperr.Wrap("failed to load user votes", err)
		}
	}

	return detail, nil
}

// UpdateQuestion applies a partial update. Existence is checked before
// permission, so strangers learn a question exists but not more.
func (s *Service) UpdateQuestion(ctx context.Context, user *models.User, id string, upd repository.QuestionUpdate) (*models.Question, error) {
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

	if upd.Title != nil {
		trimmed := strings.TrimSpace(*upd.Title)
		upd.Title = &trimmed
	}
	if upd.Description != nil {
		trimmed := strings.TrimSpace(*upd.Description)
		upd.Description = &trimmed
	}

	if err := s.repo.UpdateQuestion(ctx, id, upd); err != nil {
		return nil, apperr.Wrap("failed to update question", err)
	}

	updated, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("failed to reload question", err)
	}

	slog.Info("question_updated", "question_id", id, "user_id", user.ID)
	return updated, nil
}

// DeleteQuestion removes a question and its children.
func (s *Service) DeleteQuestion(ctx context.Context, user *models.User, id string) error {
	question, err := s.repo.GetQuestion(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.NotFound, "Question not found")
		}
		return apperr.Wrap("failed to load question", err)
	}

	if !canModify(user, question.CreatedBy) {
		return apperr.New(apperr.Forbidden, "Not authorized")
	}

	if err := s.repo.DeleteQuestion(ctx, id); err != nil {
		return apperr.Wrap("failed to delete question", err)
	}

	slog.Info("question_deleted", "question_id", id, "user_id", user.ID)
	return nil
}
