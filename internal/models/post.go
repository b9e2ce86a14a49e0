// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post represents a news article. CategoryID mirrors the first element of
// the ordered category set (post_categories.position = 0); the store keeps
// the two in sync on every taxonomy write.
type Post struct {
	ID               uuid.UUID  `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Content          string     `json:"content"`
	Excerpt          *string    `json:"excerpt,omitempty"`
	FeaturedImage    *string    `json:"featured_image,omitempty"`
	Status           PostStatus `json:"status"`
	IsFeatured       bool       `json:"is_featured"`
	FeaturedPosition *int       `json:"featured_position,omitempty"`
	CategoryID       uuid.UUID  `json:"category_id"`
	SubcategoryID    *uuid.UUID `json:"subcategory_id,omitempty"`
	AuthorID         uuid.UUID  `json:"author_id"`
	ViewCount        int64      `json:"view_count"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Hydrated associations, in stored order for categories.
	Categories []Category `json:"categories,omitempty"`
	Tags       []Tag      `json:"tags,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CategoryIDs returns the ids of the hydrated category set, in order.
func (p *Post) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
