package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/core"
	"spendwise/internal/storage"
)

func newUserService(t *testing.T, ttl time.Duration) *UserService {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewUserService(store, ttl)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, "mario", "secret")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "secret", u.PasswordHash)

	got, err := svc.Authenticate(ctx, "mario", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "  ", "secret")
	assert.ErrorIs(t, err, core.ErrEmptyUsername)

	_, err = svc.Register(ctx, "mario", "")
	assert.ErrorIs(t, err, core.ErrEmptyPassword)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "mario", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "mario", "other")
	assert.ErrorIs(t, err, storage.ErrDuplicateUsername)
}

func TestAuthenticateFailures(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "mario", "secret")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "mario", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown usernames fail identically to wrong passwords.
	_, err = svc.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	svc := newUserService(t, time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, "mario", "secret")
	require.NoError(t, err)

	sess, err := svc.StartSession(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)

	got, _, err := svc.ValidateSession(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, svc.EndSession(ctx, sess.Token))

	_, _, err = svc.ValidateSession(ctx, sess.Token)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestValidateSessionRenewsPastHalfway(t *testing.T) {
	// A tiny TTL puts every freshly created session past its halfway
	// point immediately.
	svc := newUserService(t, 100*time.Millisecond)
	ctx := context.Background()

	u, err := svc.Register(ctx, "mario", "secret")
	require.NoError(t, err)

	sess, err := svc.StartSession(ctx, u.ID)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, renewed, err := svc.ValidateSession(ctx, sess.Token)
	require.NoError(t, err)
	assert.True(t, renewed.ExpiresAt.After(sess.ExpiresAt))
}
