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

// VideoStore manages the YouTube video section.
type VideoStore struct {
	db *sql.DB
}

// NewVideoStore returns a new VideoStore.
func NewVideoStore(db *sql.DB) *VideoStore {
	return &VideoStore{db: db}
}

const videoColumns = `id, title, title_bn, youtube_id, thumbnail_url, status, created_at, updated_at`

func scanVideo(scanner interface{ Scan(...any) error }) (*models.Video, error) {
	var v models.Video
	err := scanner.Scan(&v.ID, &v.Title, &v.TitleBn, &v.YouTubeID,
		&v.ThumbnailURL, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns all videos newest first, for the admin panel.
func (s *VideoStore) List() ([]models.Video, error) {
	rows, err := s.db.Query(`SELECT ` + videoColumns + ` FROM videos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return collectVideos(rows)
}

// ListPublished returns published videos newest first, for the public site.
func (s *VideoStore) ListPublished(limit int) ([]models.Video, error) {
	rows, err := s.db.Query(`
		SELECT `+videoColumns+` FROM videos
		WHERE status = 'published'
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list published videos: %w", err)
	}
	return collectVideos(rows)
}

func collectVideos(rows *sql.Rows) ([]models.Video, error) {
	defer rows.Close()
	var items []models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		items = append(items, *v)
	}
	return items, rows.Err()
}

// FindByID retrieves a video by ID. Returns nil if not found.
func (s *VideoStore) FindByID(id uuid.UUID) (*models.Video, error) {
	row := s.db.QueryRow(`SELECT `+videoColumns+` FROM videos WHERE id = $1`, id)
	v, err := scanVideo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find video by id: %w", err)
	}
	return v, nil
}

// Create inserts a new video and returns it.
func (s *VideoStore) Create(v *models.Video) (*models.Video, error) {
	row := s.db.QueryRow(`
		INSERT INTO videos (title, title_bn, youtube_id, thumbnail_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+videoColumns,
		v.Title, v.TitleBn, v.YouTubeID, v.ThumbnailURL, v.Status,
	)
	result, err := scanVideo(row)
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return result, nil
}

// Update modifies an existing video.
func (s *VideoStore) Update(v *models.Video) error {
	_, err := s.db.Exec(`
		UPDATE videos SET title = $1, title_bn = $2, youtube_id = $3,
			thumbnail_url = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`, v.Title, v.TitleBn, v.YouTubeID, v.ThumbnailURL, v.Status, v.ID)
	if err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	return nil
}

// Delete removes a video by ID.
func (s *VideoStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}
