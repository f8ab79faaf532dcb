// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/teamhub/qna/internal/models"
	"codeberg.org/teamhub/qna/internal/testutil"
)

func TestListNotifications_UnreadFilter(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "Alice", "alice@company.com")
	bob := testutil.NewTestUser(t, repo, "Bob", "bob@company.com")

	read, err := repo.CreateNotification(ctx, alice.ID, bob.ID,
		models.ActionAnswerAdded, models.NotifyEntityAnswer, "a-1")
	require.NoError(t, err)
	require.NoError(t, repo.MarkNotificationRead(ctx, read.ID))

	_, err = repo.CreateNotification(ctx, alice.ID, bob.ID,
		models.ActionUpvote, models.NotifyEntityAnswer, "a-2")
	require.NoError(t, err)

	all, err := repo.ListNotifications(ctx, alice.ID, false, 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Bob", all[0].ActorName)

	unread, err := repo.ListNotifications(ctx, alice.ID, true, 50)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.ActionUpvote, unread[0].ActionType)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "Alice", "alice@company.com")
	bob := testutil.NewTestUser(t, repo, "Bob", "bob@company.com")

	for range 3 {
		_, err := repo.CreateNotification(ctx, alice.ID, bob.ID,
			models.ActionCommentAdded, models.NotifyEntityComment, "c-1")
		require.NoError(t, err)
	}
	// Bob's own inbox is untouched by Alice's bulk flip.
	_, err := repo.CreateNotification(ctx, bob.ID, alice.ID,
		models.ActionUpvote, models.NotifyEntityAnswer, "a-1")
	require.NoError(t, err)

	require.NoError(t, repo.MarkAllNotificationsRead(ctx, alice.ID))

	count, err := repo.CountUnreadNotifications(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountUnreadNotifications(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
