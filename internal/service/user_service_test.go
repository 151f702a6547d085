package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-hq/inkwell/internal/dto"
	"github.com/inkwell-hq/inkwell/internal/entity"
	"github.com/inkwell-hq/inkwell/pkg/apperror"
)

func registerUser(t *testing.T, deps testDeps, nickname string) *dto.UserResponse {
	t.Helper()
	user, err := deps.users.Create(context.Background(), dto.CreateUserRequest{
		Nickname:        nickname,
		Email:           nickname + "@example.com",
		ConfirmEmail:    nickname + "@example.com",
		Password:        "long-enough-secret",
		ConfirmPassword: "long-enough-secret",
	})
	require.NoError(t, err)
	return user
}

func TestUserCreateConfirmationMismatch(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()

	_, err := deps.users.Create(ctx, dto.CreateUserRequest{
		Nickname:        "newbie",
		Email:           "newbie@example.com",
		ConfirmEmail:    "typo@example.com",
		Password:        "long-enough-secret",
		ConfirmPassword: "long-enough-secret",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email confirmation")

	_, err = deps.users.Create(ctx, dto.CreateUserRequest{
		Nickname:        "newbie",
		Email:           "newbie@example.com",
		ConfirmEmail:    "newbie@example.com",
		Password:        "long-enough-secret",
		ConfirmPassword: "something-else",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password confirmation")
}

func TestUserCreateDuplicate(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()

	registerUser(t, deps, "taken")

	_, err := deps.users.Create(ctx, dto.CreateUserRequest{
		Nickname:        "taken",
		Email:           "taken@example.com",
		ConfirmEmail:    "taken@example.com",
		Password:        "long-enough-secret",
		ConfirmPassword: "long-enough-secret",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in use")
}

func TestUserUpdateSelfOrAdmin(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()

	target := registerUser(t, deps, "target")
	other := registerUser(t, deps, "other")
	admin := createAdmin(t, deps.db)

	desc := "about me"
	_, err := deps.users.Update(ctx, target.ID, dto.AuthUser{UserID: other.ID, Role: entity.RoleRegular},
		dto.UpdateUserRequest{Description: &desc})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := deps.users.Update(ctx, target.ID, dto.AuthUser{UserID: target.ID, Role: entity.RoleRegular},
		dto.UpdateUserRequest{Description: &desc})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "about me", *updated.Description)

	_, err = deps.users.Update(ctx, target.ID, asActor(admin), dto.UpdateUserRequest{Description: &desc})
	require.NoError(t, err)
}

func TestUserUpdateEmailConfirmation(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	target := registerUser(t, deps, "movable")
	actor := dto.AuthUser{UserID: target.ID, Role: entity.RoleRegular}

	newEmail := "new@example.com"
	wrong := "other@example.com"
	_, err := deps.users.Update(ctx, target.ID, actor, dto.UpdateUserRequest{
		NewEmail:     &newEmail,
		ConfirmEmail: &wrong,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email confirmation")

	updated, err := deps.users.Update(ctx, target.ID, actor, dto.UpdateUserRequest{
		NewEmail:     &newEmail,
		ConfirmEmail: &newEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)
}

func TestUserRoleChangeAdminOnly(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	target := registerUser(t, deps, "ambitious")
	admin := createAdmin(t, deps.db)

	role := string(entity.RoleAdmin)
	_, err := deps.users.Update(ctx, target.ID, dto.AuthUser{UserID: target.ID, Role: entity.RoleRegular},
		dto.UpdateUserRequest{Role: &role})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := deps.users.Update(ctx, target.ID, asActor(admin), dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
}

func TestUserLookupSurfacesStorageFailure(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	target := registerUser(t, deps, "unlucky")

	sqlDB, err := deps.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A dead connection is a storage failure, not a missing user.
	_, err = deps.users.Get(ctx, target.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserDelete(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	target := registerUser(t, deps, "leaving")
	other := registerUser(t, deps, "other")

	err := deps.users.Delete(ctx, target.ID, dto.AuthUser{UserID: other.ID, Role: entity.RoleRegular})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, deps.users.Delete(ctx, target.ID, dto.AuthUser{UserID: target.ID, Role: entity.RoleRegular}))

	_, err = deps.users.Get(ctx, target.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
