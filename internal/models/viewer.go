// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// Viewer identifies who is looking at content. It is resolved by the
// session layer and passed explicitly into store calls; the stores never
// read ambient request state. The zero value is a guest.
type Viewer struct {
	UserID uuid.UUID
	Role   Role

	authenticated bool
}

// Guest returns an anonymous viewer.
func Guest() Viewer {
	return Viewer{}
}

// Authenticated returns a viewer for a signed-in user.
func Authenticated(userID uuid.UUID, role Role) Viewer {
	return Viewer{UserID: userID, Role: role, authenticated: true}
}

// IsGuest reports whether the viewer is anonymous.
func (v Viewer) IsGuest() bool {
	return !v.authenticated
}

// IsModerator reports whether the viewer may moderate comments and
// manage taxonomy.
func (v Viewer) IsModerator() bool {
	return v.authenticated && v.Role.IsModerator()
}
