package main

import (
	"context"
	"flag"
	"log"

	"checksheet-system/pkg/config"
	"checksheet-system/pkg/database/postgresql"
	"checksheet-system/seeders"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	runCore := flag.Bool("core", false, "seed permissions and master data dictionaries")
	runRoles := flag.Bool("roles", false, "seed roles, role permissions and the admin user")
	runDemo := flag.Bool("demo", false, "seed demo customer, model, part and templates")
	runAll := flag.Bool("all", false, "run every seeder (equivalent to -core -roles -demo)")

	flag.Parse()

	if !*runCore && !*runRoles && !*runDemo && !*runAll {
		log.Println("no seeder selected")
		log.Println("")
		flag.PrintDefaults()
		log.Println("")
		log.Println("examples:")
		log.Println("  go run ./seeders/cmd/seed -core")
		log.Println("  go run ./seeders/cmd/seed -core -roles")
		log.Println("  go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	dbPool, err := postgresql.Connect(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runCore {
		seeders.SeedCoreData(dbPool)
	}
	if *runAll || *runRoles {
		// roles reference permissions, so they run after the core seeder
		seeders.SeedRolesAndAdmin(dbPool)
	}
	if *runAll || *runDemo {
		seeders.SeedDemoData(dbPool)
	}

	log.Println("seeding finished")
}
