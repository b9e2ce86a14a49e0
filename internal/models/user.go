// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleReader Role = "reader"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleReader
}

// IsModerator reports whether the role may approve or delete comments
// and manage taxonomy. Admins and editors moderate; readers do not.
func (r Role) IsModerator() bool {
	return r == RoleAdmin || r == RoleEditor
}

// User represents an account with authentication and optional 2FA fields.
// Readers register to comment; editors and admins run the panel.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Role         Role      `json:"role"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	IsSuspended  bool      `json:"is_suspended"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Needs2FASetup returns true if a panel user has not completed 2FA
// enrollment. Readers never go through 2FA.
func (u *User) Needs2FASetup() bool {
	return u.Role.IsModerator() && !u.TOTPEnabled
}
