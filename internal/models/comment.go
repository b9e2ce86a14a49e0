// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on a post. ParentID forms one level of
// nesting: a reply always points at a top-level comment, never at another
// reply. Comments are created unapproved and become visible to the public
// only after a moderator approves them. Deletion is a hard delete; replies
// cascade with their parent.
type Comment struct {
	ID         uuid.UUID  `json:"id"`
	PostID     uuid.UUID  `json:"post_id"`
	UserID     uuid.UUID  `json:"user_id"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	Content    string     `json:"content"`
	IsApproved bool       `json:"is_approved"`
	CreatedAt  time.Time  `json:"created_at"`

	// Populated by list queries.
	AuthorName string    `json:"author_name,omitempty"`
	Replies    []Comment `json:"replies,omitempty"`
}

// VisibleTo reports whether the viewer may see this comment. Moderators
// see everything; an authenticated user sees approved comments plus their
// own pending ones; guests see only approved comments. The predicate is
// applied independently to top-level comments and to each reply.
func (c *Comment) VisibleTo(v Viewer) bool {
	if v.IsModerator() {
		return true
	}
	if c.IsApproved {
		return true
	}
	return !v.IsGuest() && c.UserID == v.UserID
}
