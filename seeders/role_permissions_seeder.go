package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedRolePermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - linking roles to permissions...")

	query := `INSERT INTO role_permissions (role_id, permission_id)
			  SELECT r.id, p.id FROM roles r, permissions p
			  WHERE r.name = $1 AND p.name = $2
			  ON CONFLICT DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for roleName, permissionNames := range rolePermissionsData {
		for _, permissionName := range permissionNames {
			if _, err := tx.Exec(ctx, query, roleName, permissionName); err != nil {
				return fmt.Errorf("link %q to %q: %w", roleName, permissionName, err)
			}
		}
	}
	return tx.Commit(ctx)
}
