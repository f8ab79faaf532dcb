// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/teamhub/qna/internal/models"
)

// CreateAnswer inserts an answer and, when it is the question's first answer
// and the question is still OPEN, flips the status to ACTIVE — both in one
// transaction so no reader ever sees the answer with the status still OPEN.
// Returns the answer and whether the status flipped.
func (r *Repository) CreateAnswer(ctx context.Context, questionID, content, createdBy string) (*models.Answer, bool, error) {
	now := time.Now().UTC()
	answer := &models.Answer{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		Content:    content,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	if err := tx.GetContext(ctx, &status, `SELECT status FROM questions WHERE id = ?`, questionID); err != nil {
		return nil, false, wrapError(err)
	}

	var priorAnswers int64
	if err := tx.GetContext(ctx, &priorAnswers, `SELECT count(*) FROM answers WHERE question_id = ?`, questionID); err != nil {
		return nil, false, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO answers (id, question_id, content, vote_count, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, 0, ?, ?, ?)`,
		answer.ID, answer.QuestionID, answer.Content, answer.CreatedBy, answer.CreatedAt, answer.UpdatedAt)
	if err != nil {
		return nil, false, err
	}

	flipped := false
	if priorAnswers == 0 && status == models.StatusOpen {
		_, err = tx.ExecContext(ctx,
			`UPDATE questions SET status = ?, updated_at = ? WHERE id = ?`,
			models.StatusActive, now, questionID)
		if err != nil {
			return nil, false, err
		}
		flipped = true
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return answer, flipped, nil
}

// GetAnswer retrieves an answer by ID.
func (r *Repository) GetAnswer(ctx context.Context, id string) (*models.Answer, error) {
	var answer models.Answer
	if err := r.db.GetContext(ctx, &answer, `SELECT * FROM answers WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &answer, nil
}

// ListAnswers returns a question's answers ordered by vote count, then most
// recently updated, then oldest first.
func (r *Repository) ListAnswers(ctx context.Context, questionID string) ([]models.AnswerWithAuthor, error) {
	var answers []models.AnswerWithAuthor
	err := r.db.SelectContext(ctx, &answers,
		`SELECT a.*, u.name AS author_name FROM answers a JOIN users u ON u.id = a.created_by
		 WHERE a.question_id = ?
		 ORDER BY a.vote_count DESC, a.updated_at DESC, a.created_at ASC`,
		questionID)
	return answers, err
}

// ListAnswerAuthors returns the distinct author ids of a question's answers.
func (r *Repository) ListAnswerAuthors(ctx context.Context, questionID string) ([]string, error) {
	var authors []string
	err := r.db.SelectContext(ctx, &authors,
		`SELECT DISTINCT created_by FROM answers WHERE question_id = ?`, questionID)
	return authors, err
}

// RecountAnswerVotes recomputes every answer's denormalized vote_count from
// the authoritative vote rows and returns how many rows changed.
func (r *Repository) RecountAnswerVotes(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE answers SET vote_count =
			(SELECT count(*) FROM votes v WHERE v.entity_type = 'ANSWER' AND v.entity_id = answers.id)
		 WHERE vote_count !=
			(SELECT count(*) FROM votes v WHERE v.entity_type = 'ANSWER' AND v.entity_id = answers.id)`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
