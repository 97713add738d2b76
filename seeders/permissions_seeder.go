package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedPermissions(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding table 'permissions'...")

	query := `INSERT INTO permissions (name, description) VALUES ($1, $2)
			  ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range permissionsData {
		if _, err := tx.Exec(ctx, query, p.Name, p.Description); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
