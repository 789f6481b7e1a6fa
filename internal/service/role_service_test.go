package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
)

func TestRemoveLastAdminIsRejected(t *testing.T) {
	removed := false
	roles := &fakeRoleStore{
		HasRoleFn: func(ctx context.Context, userID string, name models.RoleName) (bool, error) {
			return true, nil
		},
		CountByRoleFn: func(ctx context.Context, name models.RoleName) (int, error) {
			return 1, nil
		},
		RemoveFn: func(ctx context.Context, userID string, name models.RoleName) error {
			removed = true
			return nil
		},
	}
	svc := NewRoleService(roles, &fakeUserStore{})

	err := svc.Remove(context.Background(), "u1", models.RoleAdmin)
	require.ErrorIs(t, err, ErrLastAdmin)
	require.False(t, removed)
}

func TestRemoveAdminWithOthersRemaining(t *testing.T) {
	removed := false
	roles := &fakeRoleStore{
		HasRoleFn: func(ctx context.Context, userID string, name models.RoleName) (bool, error) {
			return true, nil
		},
		CountByRoleFn: func(ctx context.Context, name models.RoleName) (int, error) {
			return 2, nil
		},
		RemoveFn: func(ctx context.Context, userID string, name models.RoleName) error {
			removed = true
			return nil
		},
	}
	svc := NewRoleService(roles, &fakeUserStore{})

	err := svc.Remove(context.Background(), "u1", models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, removed)
}

func TestRemoveNonAdminSkipsCount(t *testing.T) {
	roles := &fakeRoleStore{
		HasRoleFn: func(ctx context.Context, userID string, name models.RoleName) (bool, error) {
			return true, nil
		},
		CountByRoleFn: func(ctx context.Context, name models.RoleName) (int, error) {
			t.Fatal("count should not be consulted for non-admin roles")
			return 0, nil
		},
		RemoveFn: func(ctx context.Context, userID string, name models.RoleName) error {
			return nil
		},
	}
	svc := NewRoleService(roles, &fakeUserStore{})

	require.NoError(t, svc.Remove(context.Background(), "u1", models.RolePractitioner))
}

func TestRemoveUnassignedRole(t *testing.T) {
	roles := &fakeRoleStore{
		HasRoleFn: func(ctx context.Context, userID string, name models.RoleName) (bool, error) {
			return false, nil
		},
	}
	svc := NewRoleService(roles, &fakeUserStore{})

	err := svc.Remove(context.Background(), "u1", models.RolePractitioner)
	require.ErrorIs(t, err, repository.ErrAssignmentNotFound)
}

func TestAssignUnknownUser(t *testing.T) {
	svc := NewRoleService(&fakeRoleStore{}, &fakeUserStore{})

	err := svc.Assign(context.Background(), "missing", models.RolePractitioner)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestAssignExistingUser(t *testing.T) {
	var gotUser string
	var gotRole models.RoleName
	roles := &fakeRoleStore{
		AssignFn: func(ctx context.Context, userID string, name models.RoleName) error {
			gotUser = userID
			gotRole = name
			return nil
		},
	}
	users := &fakeUserStore{
		GetByIDFn: func(ctx context.Context, id string) (models.User, error) {
			return models.User{ID: id}, nil
		},
	}
	svc := NewRoleService(roles, users)

	require.NoError(t, svc.Assign(context.Background(), "u1", models.RolePractitioner))
	require.Equal(t, "u1", gotUser)
	require.Equal(t, models.RolePractitioner, gotRole)
}
