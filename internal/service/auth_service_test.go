package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metropower/dashboard/internal/domain"
)

func TestAuthService_EnsureAdminAndAuthenticate(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	ctx := context.Background()

	require.NoError(t, f.auth.EnsureAdmin(ctx, "admin", "first-pass"))
	user, err := f.auth.Authenticate(ctx, "admin", "first-pass")
	require.NoError(t, err)
	require.True(t, user.CanWrite())

	_, err = f.auth.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.auth.Authenticate(ctx, "ghost", "first-pass")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Rotating the configured password updates the stored hash.
	require.NoError(t, f.auth.EnsureAdmin(ctx, "admin", "second-pass"))
	_, err = f.auth.Authenticate(ctx, "admin", "first-pass")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = f.auth.Authenticate(ctx, "admin", "second-pass")
	require.NoError(t, err)
}

func TestAuthService_EnsureAdminWithoutPassword(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	require.NoError(t, f.auth.EnsureAdmin(context.Background(), "admin", ""))
	_, err := f.store.Users().GetByUsername(context.Background(), "admin")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthService_CreateUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t, true)
	ctx := context.Background()

	viewer, err := f.auth.CreateUser(ctx, "viewer", "pw", "")
	require.NoError(t, err)
	require.Equal(t, domain.UserRoleViewer, viewer.Role)
	require.False(t, viewer.CanWrite())
	require.NotEqual(t, "pw", viewer.PasswordHash)

	_, err = f.auth.CreateUser(ctx, "viewer", "pw", domain.UserRoleViewer)
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = f.auth.CreateUser(ctx, "root", "pw", "superuser")
	require.ErrorIs(t, err, domain.ErrValidation)
}
