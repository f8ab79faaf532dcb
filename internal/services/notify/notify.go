// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package notify is the single entry point for creating notifications.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/repository"
)

type Dispatcher struct {
	repo *repository.Repository
}

func NewDispatcher(repo *repository.Repository) *Dispatcher {
	return &Dispatcher{repo: repo}
}

// Dispatch persists a notification unless the recipient is the actor.
// Self-notifications are suppressed here and never reach the database.
func (d *Dispatcher) Dispatch(ctx context.Context, recipientID, actorID, actionType, entityType, entityID string) error {
	if recipientID == actorID {
		return nil
	}

	_, err := d.repo.CreateNotification(ctx, recipientID, actorID, actionType, entityType, entityID)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	slog.Debug("notification_dispatched",
		"recipient_id", recipientID,
		"actor_id", actorID,
		"action", actionType,
	)
	return nil
}

// NotifyQuestionAuthor notifies the author of a question about activity on it.
func (d *Dispatcher) NotifyQuestionAuthor(ctx context.Context, questionID, actorID, actionType, entityType, entityID string) error {
	question, err := d.repo.GetQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return d.Dispatch(ctx, question.CreatedBy, actorID, actionType, entityType, entityID)
}

// NotifyAnswerAuthor notifies the author of an answer about activity on it.
func (d *Dispatcher) NotifyAnswerAuthor(ctx context.Context, answerID, actorID, actionType, entityType, entityID string) error {
	answer, err := d.repo.GetAnswer(ctx, answerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return d.Dispatch(ctx, answer.CreatedBy, actorID, actionType, entityType, entityID)
}

// NotifyOnResolve notifies the question author and every distinct answer
// author. The author is notified once even when they also answered, and the
// acting user is skipped by Dispatch.
func (d *Dispatcher) NotifyOnResolve(ctx context.Context, questionID, actorID string) error {
	question, err := d.repo.GetQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := d.Dispatch(ctx, question.CreatedBy, actorID,
		models.ActionMarkResolved, models.NotifyEntityQuestion, questionID); err != nil {
		return err
	}

	authors, err := d.repo.ListAnswerAuthors(ctx, questionID)
	if err != nil {
		return err
	}
	for _, authorID := range authors {
		if authorID == question.CreatedBy {
			continue
		}
		if err := d.Dispatch(ctx, authorID, actorID,
			models.ActionMarkResolved, models.NotifyEntityQuestion, questionID); err != nil {
			return err
		}
	}
	return nil
}
