// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a top-level news section (e.g. National, Sports).
// NameBn carries the Bengali display name alongside the English one.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	NameBn    string    `json:"name_bn"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual fields populated by store methods.
	Subcategories []Subcategory `json:"subcategories,omitempty"`
	PostCount     int           `json:"post_count"`
}

// Subcategory is a second-level section owned by exactly one category.
// Deleting the category cascades to its subcategories.
type Subcategory struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	NameBn     string    `json:"name_bn"`
	Slug       string    `json:"slug"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
