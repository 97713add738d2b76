package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedDemoTemplates creates one DIR template with measurement items and one
// empty FI template.
func seedDemoTemplates(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - seeding demo checksheet templates...")

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var dirTemplateID uint64
	err = tx.QueryRow(ctx,
		`INSERT INTO checksheet_templates (code, name, type, description)
		 VALUES ('TPL-DIR-X100', 'X100 housing dimensional inspection', 'dir', 'Demo template for the X100 housing')
		 ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
	).Scan(&dirTemplateID)
	if err != nil {
		return fmt.Errorf("seed dir template: %w", err)
	}

	var itemCount int
	if err := tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM template_items WHERE template_id = $1", dirTemplateID,
	).Scan(&itemCount); err != nil {
		return err
	}
	if itemCount == 0 {
		for i, item := range demoTemplateItems {
			_, err := tx.Exec(ctx,
				`INSERT INTO template_items (template_id, item_name, nominal, tolerance_min, tolerance_max, sequence)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				dirTemplateID, item.ItemName, item.Nominal, item.ToleranceMin, item.ToleranceMax, i+1,
			)
			if err != nil {
				return fmt.Errorf("seed template item %q: %w", item.ItemName, err)
			}
		}
	} else {
		log.Println("    - DIR template already has items, skipping item seed.")
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO checksheet_templates (code, name, type, description)
		 VALUES ('TPL-FI-X100', 'X100 housing final inspection', 'fi', 'Demo template for final visual inspection')
		 ON CONFLICT (code) DO NOTHING`,
	)
	if err != nil {
		return fmt.Errorf("seed fi template: %w", err)
	}

	return tx.Commit(ctx)
}
