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

// OpinionStore manages editorial and guest columns.
type OpinionStore struct {
	db *sql.DB
}

// NewOpinionStore returns a new OpinionStore.
func NewOpinionStore(db *sql.DB) *OpinionStore {
	return &OpinionStore{db: db}
}

const opinionColumns = `id, author_name, author_title, author_image, title, content,
	status, created_at, updated_at`

func scanOpinion(scanner interface{ Scan(...any) error }) (*models.Opinion, error) {
	var o models.Opinion
	err := scanner.Scan(&o.ID, &o.AuthorName, &o.AuthorTitle, &o.AuthorImage,
		&o.Title, &o.Content, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns all opinions newest first, for the admin panel.
func (s *OpinionStore) List() ([]models.Opinion, error) {
	rows, err := s.db.Query(`SELECT ` + opinionColumns + ` FROM opinions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list opinions: %w", err)
	}
	return collectOpinions(rows)
}

// ListPublished returns published opinions newest first.
func (s *OpinionStore) ListPublished(limit int) ([]models.Opinion, error) {
	rows, err := s.db.Query(`
		SELECT `+opinionColumns+` FROM opinions
		WHERE status = 'published'
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list published opinions: %w", err)
	}
	return collectOpinions(rows)
}

func collectOpinions(rows *sql.Rows) ([]models.Opinion, error) {
	defer rows.Close()
	var items []models.Opinion
	for rows.Next() {
		o, err := scanOpinion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan opinion: %w", err)
		}
		items = append(items, *o)
	}
	return items, rows.Err()
}

// FindByID retrieves an opinion by ID. Returns nil if not found.
func (s *OpinionStore) FindByID(id uuid.UUID) (*models.Opinion, error) {
	row := s.db.QueryRow(`SELECT `+opinionColumns+` FROM opinions WHERE id = $1`, id)
	o, err := scanOpinion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find opinion by id: %w", err)
	}
	return o, nil
}

// Create inserts a new opinion and returns it.
func (s *OpinionStore) Create(o *models.Opinion) (*models.Opinion, error) {
	row := s.db.QueryRow(`
		INSERT INTO opinions (author_name, author_title, author_image, title, content, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+opinionColumns,
		o.AuthorName, o.AuthorTitle, o.AuthorImage, o.Title, o.Content, o.Status,
	)
	result, err := scanOpinion(row)
	if err != nil {
		return nil, fmt.Errorf("create opinion: %w", err)
	}
	return result, nil
}

// Update modifies an existing opinion.
func (s *OpinionStore) Update(o *models.Opinion) error {
	_, err := s.db.Exec(`
		UPDATE opinions SET author_name = $1, author_title = $2, author_image = $3,
			title = $4, content = $5, status = $6, updated_at = NOW()
		WHERE id = $7
	`, o.AuthorName, o.AuthorTitle, o.AuthorImage, o.Title, o.Content, o.Status, o.ID)
	if err != nil {
		return fmt.Errorf("update opinion: %w", err)
	}
	return nil
}

// Delete removes an opinion by ID.
func (s *OpinionStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM opinions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete opinion: %w", err)
	}
	return nil
}
