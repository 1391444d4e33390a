package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin user and the starter categories for each
// board if none exist. The admin will be prompted to set up 2FA on first
// login (totp_enabled = false).
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	// Insert default admin user. 2FA is not enabled; they must set it up
	// on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@hostwise.local", string(hash), "Admin", "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// Starter categories so the boards are usable out of the box.
	seedCategories := []struct {
		postType string
		name     string
		order    int
	}{
		{"insights", "Market Analysis", 1},
		{"insights", "Operations", 2},
		{"events", "Seminars", 1},
		{"events", "Workshops", 2},
	}
	for _, c := range seedCategories {
		_, err = db.Exec(`
			INSERT INTO categories (post_type, name, display_order)
			VALUES ($1, $2, $3)
			ON CONFLICT (post_type, name) DO NOTHING
		`, c.postType, c.name, c.order)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@hostwise.local",
		"password", "admin",
	)

	return nil
}
