// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"khoborpress/internal/errs"
	"khoborpress/internal/models"
)

// NewsletterStore manages newsletter subscriptions.
type NewsletterStore struct {
	db *sql.DB
}

// NewNewsletterStore returns a new NewsletterStore.
func NewNewsletterStore(db *sql.DB) *NewsletterStore {
	return &NewsletterStore{db: db}
}

// Subscribe adds an email to the newsletter list. Addresses are stored
// lowercase; a duplicate subscription is a conflict.
func (s *NewsletterStore) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errs.Invalidf("invalid email address")
	}

	row := s.db.QueryRow(`
		INSERT INTO newsletter_subscribers (email) VALUES ($1)
		RETURNING id, email, created_at
	`, email)

	var sub models.NewsletterSubscriber
	err := row.Scan(&sub.ID, &sub.Email, &sub.CreatedAt)
	if isUniqueViolation(err) {
		return nil, errs.Conflictf("%s is already subscribed", email)
	}
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return &sub, nil
}

// Unsubscribe removes an email from the list. Removing an address that was
// never subscribed is not an error.
func (s *NewsletterStore) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.db.Exec(`DELETE FROM newsletter_subscribers WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

// List returns all subscribers oldest first, for export.
func (s *NewsletterStore) List() ([]models.NewsletterSubscriber, error) {
	rows, err := s.db.Query(`
		SELECT id, email, created_at FROM newsletter_subscribers ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var items []models.NewsletterSubscriber
	for rows.Next() {
		var sub models.NewsletterSubscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		items = append(items, sub)
	}
	return items, rows.Err()
}

// Count returns the number of subscribers.
func (s *NewsletterStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM newsletter_subscribers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subscribers: %w", err)
	}
	return count, nil
}
