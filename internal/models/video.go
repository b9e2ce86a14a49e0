// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is a YouTube-hosted clip shown in the video section. Only the
// video id is stored; the player URL is assembled client-side.
type Video struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	TitleBn      string     `json:"title_bn"`
	YouTubeID    string     `json:"youtube_id"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	Status       PostStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Opinion is an editorial or guest column. The author is free text rather
// than a user reference, since most columnists have no account.
type Opinion struct {
	ID          uuid.UUID  `json:"id"`
	AuthorName  string     `json:"author_name"`
	AuthorTitle *string    `json:"author_title,omitempty"`
	AuthorImage *string    `json:"author_image,omitempty"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Status      PostStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
