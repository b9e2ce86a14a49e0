// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"khoborpress/internal/models"
)

// MediaStore tracks uploaded files and their resized variants. The bytes
// themselves live in object storage.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore returns a new MediaStore.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, file_name, s3_key, url, content_type, size_bytes, uploaded_by, created_at`

func scanMedia(scanner interface{ Scan(...any) error }) (*models.Media, error) {
	var m models.Media
	err := scanner.Scan(&m.ID, &m.FileName, &m.S3Key, &m.URL, &m.ContentType,
		&m.SizeBytes, &m.UploadedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create records an upload together with its variants in one transaction.
// The returned Media carries the stored variant rows.
func (s *MediaStore) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin media tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		INSERT INTO media (file_name, s3_key, url, content_type, size_bytes, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+mediaColumns,
		m.FileName, m.S3Key, m.URL, m.ContentType, m.SizeBytes, m.UploadedBy,
	)
	created, err := scanMedia(row)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}

	for _, v := range m.Variants {
		vRow := tx.QueryRowContext(ctx, `
			INSERT INTO media_variants (media_id, name, s3_key, url, width, height, size_bytes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, media_id, name, s3_key, url, width, height, size_bytes, created_at
		`, created.ID, v.Name, v.S3Key, v.URL, v.Width, v.Height, v.SizeBytes)

		var stored models.MediaVariant
		err := vRow.Scan(&stored.ID, &stored.MediaID, &stored.Name, &stored.S3Key,
			&stored.URL, &stored.Width, &stored.Height, &stored.SizeBytes, &stored.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("create media variant %s: %w", v.Name, err)
		}
		created.Variants = append(created.Variants, stored)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit media tx: %w", err)
	}
	return created, nil
}

// FindByID retrieves a media record with its variants. Returns nil if not found.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	if err := s.loadVariants(m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns media records newest first, without variants.
func (s *MediaStore) List(limit, offset int) ([]models.Media, error) {
	rows, err := s.db.Query(`
		SELECT `+mediaColumns+` FROM media
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (s *MediaStore) loadVariants(m *models.Media) error {
	rows, err := s.db.Query(`
		SELECT id, media_id, name, s3_key, url, width, height, size_bytes, created_at
		FROM media_variants WHERE media_id = $1 ORDER BY width
	`, m.ID)
	if err != nil {
		return fmt.Errorf("load media variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.MediaVariant
		err := rows.Scan(&v.ID, &v.MediaID, &v.Name, &v.S3Key, &v.URL,
			&v.Width, &v.Height, &v.SizeBytes, &v.CreatedAt)
		if err != nil {
			return fmt.Errorf("scan media variant: %w", err)
		}
		m.Variants = append(m.Variants, v)
	}
	return rows.Err()
}

// Delete removes a media record. Variant rows cascade-delete; the caller
// is responsible for deleting the blobs from object storage.
func (s *MediaStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
