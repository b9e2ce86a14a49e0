// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"khoborpress/internal/models"
)

// AdStore manages banner advertisements.
type AdStore struct {
	db *sql.DB
}

// NewAdStore returns a new AdStore.
func NewAdStore(db *sql.DB) *AdStore {
	return &AdStore{db: db}
}

const adColumns = `id, name, placement, image_url, target_url, starts_at, ends_at,
	is_active, created_at, updated_at`

func scanAd(scanner interface{ Scan(...any) error }) (*models.Ad, error) {
	var a models.Ad
	err := scanner.Scan(&a.ID, &a.Name, &a.Placement, &a.ImageURL, &a.TargetURL,
		&a.StartsAt, &a.EndsAt, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all ads, for the admin panel.
func (s *AdStore) List() ([]models.Ad, error) {
	rows, err := s.db.Query(`SELECT ` + adColumns + ` FROM ads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	return collectAds(rows)
}

// ListRunning returns the ads currently servable in a placement: active,
// inside their run window (NULL bounds are open-ended).
func (s *AdStore) ListRunning(placement models.AdPlacement) ([]models.Ad, error) {
	rows, err := s.db.Query(`
		SELECT `+adColumns+` FROM ads
		WHERE placement = $1
		  AND is_active
		  AND (starts_at IS NULL OR starts_at <= NOW())
		  AND (ends_at IS NULL OR ends_at >= NOW())
		ORDER BY created_at DESC
	`, placement)
	if err != nil {
		return nil, fmt.Errorf("list running ads: %w", err)
	}
	return collectAds(rows)
}

func collectAds(rows *sql.Rows) ([]models.Ad, error) {
	defer rows.Close()
	var items []models.Ad
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ad: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an ad by ID. Returns nil if not found.
func (s *AdStore) FindByID(id uuid.UUID) (*models.Ad, error) {
	row := s.db.QueryRow(`SELECT `+adColumns+` FROM ads WHERE id = $1`, id)
	a, err := scanAd(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find ad by id: %w", err)
	}
	return a, nil
}

// Create inserts a new ad and returns it.
func (s *AdStore) Create(a *models.Ad) (*models.Ad, error) {
	row := s.db.QueryRow(`
		INSERT INTO ads (name, placement, image_url, target_url, starts_at, ends_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+adColumns,
		a.Name, a.Placement, a.ImageURL, a.TargetURL, a.StartsAt, a.EndsAt, a.IsActive,
	)
	result, err := scanAd(row)
	if err != nil {
		return nil, fmt.Errorf("create ad: %w", err)
	}
	return result, nil
}

// Update modifies an existing ad.
func (s *AdStore) Update(a *models.Ad) error {
	_, err := s.db.Exec(`
		UPDATE ads SET name = $1, placement = $2, image_url = $3, target_url = $4,
			starts_at = $5, ends_at = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`, a.Name, a.Placement, a.ImageURL, a.TargetURL, a.StartsAt, a.EndsAt, a.IsActive, a.ID)
	if err != nil {
		return fmt.Errorf("update ad: %w", err)
	}
	return nil
}

// Delete removes an ad by ID.
func (s *AdStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ad: %w", err)
	}
	return nil
}

// DeactivateExpired flips is_active off for ads whose run window has
// ended. Called by the nightly sweep; returns how many ads it touched.
func (s *AdStore) DeactivateExpired() (int64, error) {
	res, err := s.db.Exec(`
		UPDATE ads SET is_active = FALSE, updated_at = NOW()
		WHERE is_active AND ends_at IS NOT NULL AND ends_at < NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("deactivate expired ads: %w", err)
	}
	return res.RowsAffected()
}
