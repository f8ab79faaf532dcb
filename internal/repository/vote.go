// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vinovest/sqlx"

	"codeberg.org/teamhub/qna/internal/models"
)

// CreateVote records an upvote. The vote insert and the answer counter
// increment happen in one transaction so the counter can never disagree with
// the vote rows. Returns false without error when the vote already exists.
func (r *Repository) CreateVote(ctx context.Context, entityType, entityID, userID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing int64
	err = tx.GetContext(ctx, &existing,
		`SELECT count(*) FROM votes WHERE entity_type = ? AND entity_id = ? AND user_id = ?`,
		entityType, entityID, userID)
	if err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO votes (id, entity_type, entity_id, user_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), entityType, entityID, userID, time.Now().UTC())
	if err != nil {
		return false, err
	}

	// Only ANSWER votes feed the denormalized counter.
	if entityType == models.EntityAnswer {
		_, err = tx.ExecContext(ctx,
			`UPDATE answers SET vote_count = vote_count + 1 WHERE id = ?`, entityID)
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteVote removes an upvote, decrementing the answer counter in the same
// transaction. Returns false without error when no vote exists.
func (r *Repository) DeleteVote(ctx context.Context, entityType, entityID, userID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM votes WHERE entity_type = ? AND entity_id = ? AND user_id = ?`,
		entityType, entityID, userID)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted == 0 {
		return false, nil
	}

	if entityType == models.EntityAnswer {
		_, err = tx.ExecContext(ctx,
			`UPDATE answers SET vote_count = vote_count - 1 WHERE id = ?`, entityID)
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// CountVotes returns the number of vote rows on a target.
func (r *Repository) CountVotes(ctx context.Context, entityType, entityID string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM votes WHERE entity_type = ? AND entity_id = ?`,
		entityType, entityID)
	return count, err
}

// UserAnswerVotes returns which of the given answers the user has upvoted.
func (r *Repository) UserAnswerVotes(ctx context.Context, userID string, answerIDs []string) (map[string]bool, error) {
	votes := make(map[string]bool, len(answerIDs))
	if len(answerIDs) == 0 {
		return votes, nil
	}

	query, args, err := sqlx.In(
		`SELECT entity_id FROM votes WHERE user_id = ? AND entity_type = 'ANSWER' AND entity_id IN (?)`,
		userID, answerIDs)
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, id := range ids {
		votes[id] = true
	}
	return votes, nil
}
