package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"checksheet-system/pkg/constants"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const defaultAdminPassword = "admin12345"

func seedAdminUser(ctx context.Context, db *pgxpool.Pool, password string) error {
	log.Println("  - creating the 'admin' user...")

	username := "admin"
	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&userID)
	if err == nil {
		log.Println("    - admin user already exists, skipping.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin user existence: %w", err)
	}

	var roleID uint64
	err = db.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1 LIMIT 1", constants.RoleAdmin).Scan(&roleID)
	if err != nil {
		return fmt.Errorf("role %q not found, run the roles seeder first: %w", constants.RoleAdmin, err)
	}

	if password == "" {
		password = defaultAdminPassword
		log.Println("    - ADMIN_PASSWORD not set, using the default development password.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (username, full_name, email, password_hash, role_id)
		 VALUES ($1, $2, $3, $4, $5)`,
		username, "System Administrator", "admin@example.com", string(hash), roleID,
	)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Println("    - admin user created.")
	return nil
}
