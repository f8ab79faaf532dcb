// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package forum implements the content model and the question workflow:
// questions, answers, comments, votes and the status transitions.
package forum

import (
	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
	"codeberg.org/teamhub/qna/internal/services/notify"
)

// Content length limits.
const (
	TitleMin       = 5
	TitleMax       = 150
	DescriptionMax = 10000
	AnswerMax      = 10000
	CommentMax     = 1000
	TagsMin        = 2
	TagsMax        = 4
)

// Listing page limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

type Service struct {
	repo     *repository.Repository
	notifier *notify.Dispatcher
}

func NewService(repo *repository.Repository, notifier *notify.Dispatcher) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// canModify reports whether the user may update, delete or transition the
// content created by createdBy. Managers bypass the ownership check.
func canModify(user *models.User, createdBy string) bool {
	return user.ID == createdBy || user.IsManager()
}
