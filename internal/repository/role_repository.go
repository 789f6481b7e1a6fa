package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"cesizen/api/internal/models"
)

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrAssignmentNotFound = errors.New("role assignment not found")
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) ListAll(ctx context.Context) ([]models.Role, error) {
	const query = `SELECT id, name, description FROM roles ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) RolesByUser(ctx context.Context, userID string) ([]models.Role, error) {
	const query = `
		SELECT r.id, r.name, r.description
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY r.name
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepository) NamesByUser(ctx context.Context, userID string) ([]models.RoleName, error) {
	roles, err := r.RolesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make([]models.RoleName, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names, nil
}

func (r *RoleRepository) HasRole(ctx context.Context, userID string, name models.RoleName) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM user_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE ur.user_id = $1 AND r.name = $2
		)
	`
	var has bool
	if err := r.pool.QueryRow(ctx, query, userID, name).Scan(&has); err != nil {
		return false, err
	}
	return has, nil
}

func (r *RoleRepository) CountByRole(ctx context.Context, name models.RoleName) (int, error) {
	const query = `
		SELECT COUNT(*) FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE r.name = $1
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, name).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Assign is idempotent: assigning a role a user already holds is a no-op.
func (r *RoleRepository) Assign(ctx context.Context, userID string, name models.RoleName) error {
	const query = `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = $2
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	cmd, err := r.pool.Exec(ctx, query, userID, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		// either the role name does not exist or the assignment already did
		has, hasErr := r.HasRole(ctx, userID, name)
		if hasErr != nil {
			return hasErr
		}
		if !has {
			return ErrRoleNotFound
		}
	}
	return nil
}

func (r *RoleRepository) Remove(ctx context.Context, userID string, name models.RoleName) error {
	const query = `
		DELETE FROM user_roles ur
		USING roles r
		WHERE ur.role_id = r.id AND ur.user_id = $1 AND r.name = $2
	`
	cmd, err := r.pool.Exec(ctx, query, userID, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}
