package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"checksheet-system/internal/entities"
	apperrors "checksheet-system/pkg/errors"
)

type RoleRepositoryInterface interface {
	GetRoles(ctx context.Context) ([]entities.Role, error)
	FindRole(ctx context.Context, id uint64) (*entities.Role, error)
	FindRoleByName(ctx context.Context, name string) (*entities.Role, error)
}

type roleRepository struct{ storage Querier }

func NewRoleRepository(storage Querier) RoleRepositoryInterface {
	return &roleRepository{storage: storage}
}

func (r *roleRepository) GetRoles(ctx context.Context) ([]entities.Role, error) {
	query, args, err := psql.Select("id, name, description").From("roles").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := make([]entities.Role, 0)
	for rows.Next() {
		var role entities.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *roleRepository) FindRole(ctx context.Context, id uint64) (*entities.Role, error) {
	return r.findBy(ctx, sq.Eq{"id": id})
}

func (r *roleRepository) FindRoleByName(ctx context.Context, name string) (*entities.Role, error) {
	return r.findBy(ctx, sq.Eq{"name": name})
}

func (r *roleRepository) findBy(ctx context.Context, cond sq.Eq) (*entities.Role, error) {
	query, args, err := psql.Select("id, name, description").From("roles").Where(cond).ToSql()
	if err != nil {
		return nil, err
	}

	var role entities.Role
	err = r.storage.QueryRow(ctx, query, args...).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}
