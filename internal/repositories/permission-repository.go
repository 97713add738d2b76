package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"checksheet-system/internal/entities"
)

type PermissionRepositoryInterface interface {
	GetPermissions(ctx context.Context) ([]entities.Permission, error)
	GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error)
}

type permissionRepository struct{ storage Querier }

func NewPermissionRepository(storage Querier) PermissionRepositoryInterface {
	return &permissionRepository{storage: storage}
}

func (r *permissionRepository) GetPermissions(ctx context.Context) ([]entities.Permission, error) {
	query, args, err := psql.Select("id, name, description").
		From("permissions").OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	permissions := make([]entities.Permission, 0)
	for rows.Next() {
		var p entities.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

func (r *permissionRepository) GetPermissionsNamesByRoleID(ctx context.Context, roleID uint64) ([]string, error) {
	query, args, err := psql.Select("p.name").
		From("role_permissions rp").
		Join("permissions p ON p.id = rp.permission_id").
		Where(sq.Eq{"rp.role_id": roleID}).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
