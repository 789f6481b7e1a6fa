package service

import (
	"context"
	"errors"

	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
)

// ErrLastAdmin guards the invariant that at least one user holds ADMIN
// at all times.
var ErrLastAdmin = errors.New("cannot remove the last admin")

type RoleService struct {
	roles repository.RoleStore
	users repository.UserStore
}

func NewRoleService(roles repository.RoleStore, users repository.UserStore) *RoleService {
	return &RoleService{roles: roles, users: users}
}

func (s *RoleService) All(ctx context.Context) ([]models.Role, error) {
	return s.roles.ListAll(ctx)
}

func (s *RoleService) UserRoles(ctx context.Context, userID string) ([]models.Role, error) {
	return s.roles.RolesByUser(ctx, userID)
}

func (s *RoleService) Assign(ctx context.Context, userID string, name models.RoleName) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.roles.Assign(ctx, userID, name)
}

func (s *RoleService) Remove(ctx context.Context, userID string, name models.RoleName) error {
	has, err := s.roles.HasRole(ctx, userID, name)
	if err != nil {
		return err
	}
	if !has {
		return repository.ErrAssignmentNotFound
	}

	if name == models.RoleAdmin {
		count, err := s.roles.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastAdmin
		}
	}

	return s.roles.Remove(ctx, userID, name)
}
