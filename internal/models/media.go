// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Media is an uploaded file tracked in the database; the bytes live in
// S3-compatible object storage. Rows and blobs are not transactionally
// coupled; an orphaned blob after a failed save is acceptable.
type Media struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	S3Key       string    `json:"s3_key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`

	// Variants are resized renditions generated at upload time.
	Variants []MediaVariant `json:"variants,omitempty"`
}

// MediaVariant is one resized WebP rendition of an uploaded image.
type MediaVariant struct {
	ID        uuid.UUID `json:"id"`
	MediaID   uuid.UUID `json:"media_id"`
	Name      string    `json:"name"` // "thumb", "sm", "md", "lg"
	S3Key     string    `json:"s3_key"`
	URL       string    `json:"url"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
