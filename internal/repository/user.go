// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/teamhub/qna/internal/models"
)

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves the user owning the auth account with the given email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user,
		`SELECT u.* FROM users u JOIN auth_accounts a ON a.user_id = u.id WHERE a.email = ?`,
		email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// CreateUserWithEmail creates a user and its 1:1 auth account in one
// transaction. New users always start with the USER role.
func (r *Repository) CreateUserWithEmail(ctx context.Context, name, email string) (*models.User, error) {
	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Role:      models.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (id, name, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO auth_accounts (id, user_id, email, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), user.ID, email, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// GetAccountByEmail retrieves an auth account by email.
func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (*models.AuthAccount, error) {
	var account models.AuthAccount
	if err := r.db.GetContext(ctx, &account, `SELECT * FROM auth_accounts WHERE email = ?`, email); err != nil {
		return nil, wrapError(err)
	}
	return &account, nil
}

// UpdateLastLogin stamps the auth account of the given user.
func (r *Repository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE auth_accounts SET last_login = ? WHERE user_id = ?`, at, userID)
	return err
}

// ProfileUpdate holds the optional profile fields of a PATCH request.
// Pointer fields are left untouched when nil; the Clear flags set the
// optional columns back to NULL.
type ProfileUpdate struct {
	Name            *string
	JobTitle        *string
	ClearJobTitle   bool
	Department      *string
	ClearDepartment bool
}

// UpdateProfile applies a partial profile update.
func (r *Repository) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) error {
	query := `UPDATE users SET updated_at = ?`
	args := []any{time.Now().UTC()}

	if upd.Name != nil {
		query += `, name = ?`
		args = append(args, *upd.Name)
	}
	switch {
	case upd.ClearJobTitle:
		query += `, job_title = NULL`
	case upd.JobTitle != nil:
		query += `, job_title = ?`
		args = append(args, *upd.JobTitle)
	}
	switch {
	case upd.ClearDepartment:
		query += `, department = NULL`
	case upd.Department != nil:
		query += `, department = ?`
		args = append(args, *upd.Department)
	}

	query += ` WHERE id = ?`
	args = append(args, userID)

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetProfile retrieves a user together with their email and contribution counts.
func (r *Repository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.GetContext(ctx, &profile,
		`SELECT u.*, a.email FROM users u JOIN auth_accounts a ON a.user_id = u.id WHERE u.id = ?`,
		userID)
	if err != nil {
		return nil, wrapError(err)
	}

	err = r.db.GetContext(ctx, &profile.Contributions,
		`SELECT
			(SELECT count(*) FROM questions WHERE created_by = ?) AS questions_asked,
			(SELECT count(*) FROM answers WHERE created_by = ?) AS answers_given,
			(SELECT count(*) FROM comments WHERE created_by = ?) AS comments_made`,
		userID, userID, userID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
