// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/teamhub/qna/internal/models"
)

// statusRank orders questions RESOLVED > ACTIVE > OPEN when sorted DESC.
const statusRank = `CASE status WHEN 'RESOLVED' THEN 2 WHEN 'ACTIVE' THEN 1 ELSE 0 END`

// CreateQuestion inserts a new question with status OPEN.
func (r *Repository) CreateQuestion(ctx context.Context, title, description string, tags models.TagList, createdBy string) (*models.Question, error) {
	now := time.Now().UTC()
	question := &models.Question{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Tags:        tags,
		Status:      models.StatusOpen,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (id, title, description, tags, status, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		question.ID, question.Title, question.Description, question.Tags,
		question.Status, question.CreatedBy, question.CreatedAt, question.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return question, nil
}

// GetQuestion retrieves a question by ID.
func (r *Repository) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	if err := r.db.GetContext(ctx, &question, `SELECT * FROM questions WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &question, nil
}

// QuestionFilter narrows and pages the question listing.
type QuestionFilter struct {
	Search string
	Tags   []string
	Status string
	Page   int
	Limit  int
}

// ListQuestions returns a page of questions ordered by status rank
// (RESOLVED, ACTIVE, OPEN) and recency, plus the unpaged total.
func (r *Repository) ListQuestions(ctx context.Context, filter QuestionFilter) ([]models.QuestionWithCounts, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if filter.Search != "" {
		where += ` AND (q.title LIKE ? COLLATE NOCASE OR q.description LIKE ? COLLATE NOCASE)`
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	if len(filter.Tags) > 0 {
		where += ` AND (`
		for i, tag := range filter.Tags {
			if i > 0 {
				where += ` OR `
			}
			// Tags are stored as a JSON array of strings.
			where += `q.tags LIKE ?`
			args = append(args, `%"`+tag+`"%`)
		}
		where += `)`
	}
	if filter.Status != "" {
		where += ` AND q.status = ?`
		args = append(args, filter.Status)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM questions q`+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT q.*, u.name AS author_name,
		(SELECT count(*) FROM answers a WHERE a.question_id = q.id) AS answer_count,
		(SELECT count(*) FROM comments c WHERE c.parent_type = 'QUESTION' AND c.parent_id = q.id) AS comment_count
		FROM questions q JOIN users u ON u.id = q.created_by` + where +
		` ORDER BY ` + statusRank + ` DESC, q.updated_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	var questions []models.QuestionWithCounts
	if err := r.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// QuestionUpdate holds the optional fields of a question PATCH.
type QuestionUpdate struct {
	Title       *string
	Description *string
	Tags        models.TagList
}

// UpdateQuestion applies a partial update and bumps updated_at.
func (r *Repository) UpdateQuestion(ctx context.Context, id string, upd QuestionUpdate) error {
	query := `UPDATE questions SET updated_at = ?`
	args := []any{time.Now().UTC()}

	if upd.Title != nil {
		query += `, title = ?`
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		query += `, description = ?`
		args = append(args, *upd.Description)
	}
	if upd.Tags != nil {
		query += `, tags = ?`
		args = append(args, upd.Tags)
	}

	query += ` WHERE id = ?`
	args = append(args, id)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteQuestion removes a question; answers and comments on it go with it.
func (r *Repository) DeleteQuestion(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id); err != nil {
		return err
	}
	// Comments reference their parent polymorphically, so the question's FK
	// cascade does not reach them.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE parent_type = 'QUESTION' AND parent_id = ?`, id)
	return err
}

// SetQuestionStatus transitions a question and bumps updated_at.
func (r *Repository) SetQuestionStatus(ctx context.Context, id, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE questions SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	return err
}

// CountAnswers returns the number of answers on a question.
func (r *Repository) CountAnswers(ctx context.Context, questionID string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM answers WHERE question_id = ?`, questionID)
	return count, err
}
