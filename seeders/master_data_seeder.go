package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedCodeNameTable inserts simple code+name dictionary rows, skipping rows
// whose code already exists.
func seedCodeNameTable(ctx context.Context, db *pgxpool.Pool, table, codeColumn string, rows []codeNameSeed) error {
	log.Printf("  - seeding table '%s'...", table)

	query := fmt.Sprintf(
		`INSERT INTO %s (%s, name) VALUES ($1, $2) ON CONFLICT (%s) DO NOTHING;`,
		table, codeColumn, codeColumn,
	)
	for _, row := range rows {
		if _, err := db.Exec(ctx, query, row.Code, row.Name); err != nil {
			return fmt.Errorf("seed %s %q: %w", table, row.Code, err)
		}
	}
	return nil
}

// seedCustomersModelsParts creates one demo customer with a model and a part,
// so a freshly seeded database can accept checksheets immediately.
func seedCustomersModelsParts(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding demo customer, model and part...")

	var customerID uint64
	err := db.QueryRow(ctx,
		`INSERT INTO customers (customer_code, name, address)
		 VALUES ('CUST-ACME', 'Acme Manufacturing', '1 Industrial Park Rd')
		 ON CONFLICT (customer_code) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
	).Scan(&customerID)
	if err != nil {
		return fmt.Errorf("seed demo customer: %w", err)
	}

	var modelID uint64
	err = db.QueryRow(ctx,
		`INSERT INTO models (model_code, name, customer_id)
		 VALUES ('MDL-X100', 'X100 gearbox housing', $1)
		 ON CONFLICT (model_code) DO UPDATE SET customer_id = EXCLUDED.customer_id
		 RETURNING id`,
		customerID,
	).Scan(&modelID)
	if err != nil {
		return fmt.Errorf("seed demo model: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO parts (part_code, name, model_id)
		 VALUES ('PRT-X100-01', 'Housing body', $1)
		 ON CONFLICT (part_code) DO NOTHING`,
		modelID,
	)
	if err != nil {
		return fmt.Errorf("seed demo part: %w", err)
	}
	return nil
}
