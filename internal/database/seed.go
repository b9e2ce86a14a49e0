package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// defaultCategories are the sections a fresh install starts with.
// Bengali names are the primary display names on the public site.
var defaultCategories = []struct {
	Name   string
	NameBn string
	Slug   string
}{
	{"National", "জাতীয়", "national"},
	{"International", "আন্তর্জাতিক", "international"},
	{"Politics", "রাজনীতি", "politics"},
	{"Sports", "খেলাধুলা", "sports"},
	{"Entertainment", "বিনোদন", "entertainment"},
	{"Technology", "প্রযুক্তি", "technology"},
}

// Seed populates the database with initial development data: a default
// admin user and the standard category set. It is a no-op if users
// already exist. The admin is prompted to set up 2FA on first login.
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

	_, err = db.Exec(`
		INSERT INTO users (full_name, email, password_hash, role, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "Admin", "admin@khoborpress.local", string(hash), "admin", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	for _, c := range defaultCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, name_bn, slug)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO NOTHING
		`, c.Name, c.NameBn, c.Slug)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@khoborpress.local",
		"password", "admin",
	)

	return nil
}
