// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// AdPlacement names a fixed advertising position on the public site.
type AdPlacement string

const (
	AdPlacementHeader  AdPlacement = "header"
	AdPlacementSidebar AdPlacement = "sidebar"
	AdPlacementInline  AdPlacement = "inline"
	AdPlacementFooter  AdPlacement = "footer"
)

// Ad is a banner advertisement with an optional run window. The nightly
// sweep deactivates ads whose EndsAt has passed.
type Ad struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Placement AdPlacement `json:"placement"`
	ImageURL  string      `json:"image_url"`
	TargetURL string      `json:"target_url"`
	StartsAt  *time.Time  `json:"starts_at,omitempty"`
	EndsAt    *time.Time  `json:"ends_at,omitempty"`
	IsActive  bool        `json:"is_active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// RunningAt reports whether the ad should be served at the given instant.
func (a *Ad) RunningAt(t time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartsAt != nil && t.Before(*a.StartsAt) {
		return false
	}
	if a.EndsAt != nil && t.After(*a.EndsAt) {
		return false
	}
	return true
}

// NewsletterSubscriber is an email address collected from the subscribe
// form. Unsubscribing deletes the row.
type NewsletterSubscriber struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
