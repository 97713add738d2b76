package seeders

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCoreData fills the permission table and the master data dictionaries.
func SeedCoreData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶ core data")

	if err := seedPermissions(ctx, db); err != nil {
		log.Fatalf("permissions seeder failed: %v", err)
	}
	if err := seedCodeNameTable(ctx, db, "sections", "section_code", sectionsData); err != nil {
		log.Fatalf("sections seeder failed: %v", err)
	}
	if err := seedCodeNameTable(ctx, db, "types", "type_code", typesData); err != nil {
		log.Fatalf("types seeder failed: %v", err)
	}
	if err := seedCodeNameTable(ctx, db, "shifts", "shift_code", shiftsData); err != nil {
		log.Fatalf("shifts seeder failed: %v", err)
	}
	if err := seedCodeNameTable(ctx, db, "materials", "material_code", materialsData); err != nil {
		log.Fatalf("materials seeder failed: %v", err)
	}
	if err := seedCodeNameTable(ctx, db, "reject_reasons", "reason_code", rejectReasonsData); err != nil {
		log.Fatalf("reject reasons seeder failed: %v", err)
	}
	log.Println("✔ core data seeded")
}

// SeedRolesAndAdmin creates the built-in roles, links them to permissions and
// creates the administrator account. Run the core seeder first.
func SeedRolesAndAdmin(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶ roles and admin user")

	if err := seedRoles(ctx, db); err != nil {
		log.Fatalf("roles seeder failed: %v", err)
	}
	if err := seedRolePermissions(ctx, db); err != nil {
		log.Fatalf("role permissions seeder failed: %v", err)
	}
	if err := seedAdminUser(ctx, db, os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("admin user seeder failed: %v", err)
	}
	log.Println("✔ roles and admin seeded")
}

// SeedDemoData creates a sample customer, model, part and checksheet
// templates for local development.
func SeedDemoData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶ demo data")

	if err := seedCustomersModelsParts(ctx, db); err != nil {
		log.Fatalf("demo master data seeder failed: %v", err)
	}
	if err := seedDemoTemplates(ctx, db); err != nil {
		log.Fatalf("demo template seeder failed: %v", err)
	}
	log.Println("✔ demo data seeded")
}
