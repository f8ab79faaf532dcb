// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/teamhub/qna/internal/services/auth"
	"codeberg.org/teamhub/qna/internal/testutil"
)

// fakeMailer records the codes it was asked to deliver.
type fakeMailer struct {
	codes []string
}

func (f *fakeMailer) SendOtp(_ context.Context, _, code string, _ int) error {
	f.codes = append(f.codes, code)
	return nil
}

func (f *fakeMailer) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.codes)
	return f.codes[len(f.codes)-1]
}

func TestRequestOtp_DeliversCode(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)
	ctx := context.Background()

	result, err := svc.RequestOtp(ctx, "alice@company.com", "")

	require.NoError(t, err)
	assert.True(t, result.IsNewUser)
	assert.True(t, result.RequiresName)
	require.Len(t, mailer.codes, 1)
	assert.Len(t, mailer.codes[0], auth.OtpLength)
}

func TestRequestOtp_ExistingUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	testutil.NewTestUser(t, repo, "Alice", "alice@company.com")
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)

	result, err := svc.RequestOtp(context.Background(), "alice@company.com", "")

	require.NoError(t, err)
	assert.False(t, result.IsNewUser)
	assert.False(t, result.RequiresName)
}

func TestRequestOtp_InvalidEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo, &fakeMailer{})

	_, err := svc.RequestOtp(context.Background(), "not-an-email", "")

	assert.ErrorIs(t, err, auth.ErrInvalidEmail)
}

func TestRequestOtp_RateLimited(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := svc.RequestOtp(ctx, "alice@company.com", "")
	require.NoError(t, err)

	_, err = svc.RequestOtp(ctx, "alice@company.com", "")

	assert.ErrorIs(t, err, auth.ErrRateLimited)
	assert.Len(t, mailer.codes, 1)
}

func TestVerifyOtp_NewUserLogin(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := svc.RequestOtp(ctx, "alice@company.com", "Alice")
	require.NoError(t, err)

	user, session, err := svc.VerifyOtp(ctx, "alice@company.com", mailer.lastCode(t), "Alice", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(session.CreatedAt))

	account, err := repo.GetAccountByEmail(ctx, "alice@company.com")
	require.NoError(t, err)
	assert.NotNil(t, account.LastLogin)
}

func TestVerifyOtp_NewUserWithoutName(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := svc.RequestOtp(ctx, "alice@company.com", "")
	require.NoError(t, err)

	_, _, err = svc.VerifyOtp(ctx, "alice@company.com", mailer.lastCode(t), "", nil, nil)

	assert.ErrorIs(t, err, auth.ErrNameRequired)
}

func TestVerifyOtp_SingleUse(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := svc.RequestOtp(ctx, "alice@company.com", "Alice")
	require.NoError(t, err)
	code := mailer.lastCode(t)

	_, _, err = svc.VerifyOtp(ctx, "alice@company.com", code, "Alice", nil, nil)
	require.NoError(t, err)

	// The same correct code must not work a second time.
	_, _, err = svc.VerifyOtp(ctx, "alice@company.com", code, "Alice", nil, nil)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpired)
}

func TestVerifyOtp_AttemptExhaustion(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := svc.RequestOtp(ctx, "alice@company.com", "Alice")
	require.NoError(t, err)
	code := mailer.lastCode(t)

	for range auth.OtpMaxAttempts {
		_, _, err = svc.VerifyOtp(ctx, "alice@company.com", "000000", "Alice", nil, nil)
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
	}

	// Even the correct code fails after the attempts are exhausted, and the
	// OTP is burned for good.
	_, _, err = svc.VerifyOtp(ctx, "alice@company.com", code, "Alice", nil, nil)
	assert.ErrorIs(t, err, auth.ErrTooManyAttempts)

	_, _, err = svc.VerifyOtp(ctx, "alice@company.com", code, "Alice", nil, nil)
	assert.ErrorIs(t, err, auth.ErrInvalidOrExpired)
}

func TestVerifyOtp_NoOtpRequested(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	svc := auth.NewService(repo, &fakeMailer{})

	_, _, err := svc.VerifyOtp(context.Background(), "alice@company.com", "123456", "Alice", nil, nil)

	assert.ErrorIs(t, err, auth.ErrInvalidOrExpired)
}

func TestCurrentUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := svc.RequestOtp(ctx, "alice@company.com", "Alice")
	require.NoError(t, err)
	user, session, err := svc.VerifyOtp(ctx, "alice@company.com", mailer.lastCode(t), "Alice", nil, nil)
	require.NoError(t, err)

	resolved, err := svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	// Unknown token and empty token resolve to anonymous, not to an error.
	resolved, err = svc.CurrentUser(ctx, "bogus")
	require.NoError(t, err)
	assert.Nil(t, resolved)

	resolved, err = svc.CurrentUser(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestLogout_RevokesSession(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	mailer := &fakeMailer{}
	svc := auth.NewService(repo, mailer)
	ctx := context.Background()

	_, err := svc.RequestOtp(ctx, "alice@company.com", "Alice")
	require.NoError(t, err)
	_, session, err := svc.VerifyOtp(ctx, "alice@company.com", mailer.lastCode(t), "Alice", nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))

	resolved, err := svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// Logging out twice is fine.
	require.NoError(t, svc.Logout(ctx, session.Token))
	require.NoError(t, svc.Logout(ctx, ""))
}
