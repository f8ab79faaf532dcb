// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/teamhub/qna/internal/models"
)

// CreateComment inserts a comment under a question or answer.
func (r *Repository) CreateComment(ctx context.Context, parentType, parentID, content, createdBy string) (*models.Comment, error) {
	comment := &models.Comment{
		ID:         uuid.NewString(),
		ParentType: parentType,
		ParentID:   parentID,
		Content:    content,
		CreatedBy:  createdBy,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, parent_type, parent_id, content, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID, comment.ParentType, comment.ParentID, comment.Content,
		comment.CreatedBy, comment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComment retrieves a comment by ID.
func (r *Repository) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, `SELECT * FROM comments WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &comment, nil
}

// ListComments returns the comments under one parent, oldest first.
func (r *Repository) ListComments(ctx context.Context, parentType, parentID string) ([]models.CommentWithAuthor, error) {
	var comments []models.CommentWithAuthor
	err := r.db.SelectContext(ctx, &comments,
		`SELECT c.*, u.name AS author_name FROM comments c JOIN users u ON u.id = c.created_by
		 WHERE c.parent_type = ? AND c.parent_id = ?
		 ORDER BY c.created_at ASC`,
		parentType, parentID)
	return comments, err
}
