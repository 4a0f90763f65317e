package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
)

func TestUserCreate_HashesPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Create(ctx, &CreateUserRequest{
		Username: "alex",
		Email:    "Alex@Example.com",
		Password: "hunter2!",
	})
	require.NoError(t, err)
	require.Equal(t, "alex", user.Username)
	require.Equal(t, "alex@example.com", user.Email)
	require.NotEqual(t, "hunter2!", user.PasswordHash)
	require.False(t, user.IsAdmin)
}

func TestUserCreate_RejectsMissingFields(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.users.Create(context.Background(), &CreateUserRequest{Username: "alex"})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindMissingField, ve.Kind)
}

func TestUserCreate_RejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Create(ctx, &CreateUserRequest{Username: "alex", Email: "alex@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = env.users.Create(ctx, &CreateUserRequest{Username: "alex", Email: "other@example.com", Password: "pw"})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindDuplicateUsername, ve.Kind)

	_, err = env.users.Create(ctx, &CreateUserRequest{Username: "sam", Email: "alex@example.com", Password: "pw"})
	ve, ok = apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindDuplicateEmail, ve.Kind)
}

func TestUserUpdate_UniquenessExcludesSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Create(ctx, &CreateUserRequest{Username: "alex", Email: "alex@example.com", Password: "pw"})
	require.NoError(t, err)
	other, err := env.users.Create(ctx, &CreateUserRequest{Username: "sam", Email: "sam@example.com", Password: "pw"})
	require.NoError(t, err)

	// Keeping your own username is not a duplicate.
	require.NoError(t, env.users.Update(ctx, user.UserID, &UpdateUserRequest{
		Username: "alex",
		Email:    "alex@example.com",
	}))

	err = env.users.Update(ctx, other.UserID, &UpdateUserRequest{
		Username: "alex",
		Email:    "sam@example.com",
	})
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindDuplicateUsername, ve.Kind)
}

func TestUserUpdate_OptionalPasswordChange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Create(ctx, &CreateUserRequest{Username: "alex", Email: "alex@example.com", Password: "original"})
	require.NoError(t, err)

	require.NoError(t, env.users.Update(ctx, user.UserID, &UpdateUserRequest{
		Username: "alex",
		Email:    "alex@example.com",
	}))
	_, err = env.users.Authenticate(ctx, "alex", "original")
	require.NoError(t, err)

	require.NoError(t, env.users.Update(ctx, user.UserID, &UpdateUserRequest{
		Username: "alex",
		Email:    "alex@example.com",
		Password: "rotated",
	}))
	_, err = env.users.Authenticate(ctx, "alex", "original")
	require.Error(t, err)
	_, err = env.users.Authenticate(ctx, "alex", "rotated")
	require.NoError(t, err)
}

func TestUserAuthenticate_UsernameOrEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.users.Create(ctx, &CreateUserRequest{Username: "alex", Email: "alex@example.com", Password: "pw"})
	require.NoError(t, err)

	byName, err := env.users.Authenticate(ctx, "alex", "pw")
	require.NoError(t, err)
	byEmail, err := env.users.Authenticate(ctx, "alex@example.com", "pw")
	require.NoError(t, err)
	require.Equal(t, byName.UserID, byEmail.UserID)

	_, err = env.users.Authenticate(ctx, "alex", "wrong")
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindInvalidUser, ve.Kind)

	_, err = env.users.Authenticate(ctx, "nobody", "pw")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
