// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"khoborpress/internal/errs"
	"khoborpress/internal/models"
)

// CommentStore manages reader comments and their moderation state.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `c.id, c.post_id, c.user_id, c.parent_id, c.content,
	c.is_approved, c.created_at, u.full_name`

// scanComment scans a joined comment+author row.
func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := scanner.Scan(
		&c.ID, &c.PostID, &c.UserID, &c.ParentID, &c.Content,
		&c.IsApproved, &c.CreatedAt, &c.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create adds a new comment to a post. Comments always start unapproved,
// whoever writes them. A reply to a reply is reattached to the reply's
// top-level parent so the thread never nests more than one level deep.
func (s *CommentStore) Create(ctx context.Context, postID, userID uuid.UUID, parentID *uuid.UUID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.Invalidf("comment content is empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin comment tx: %w", err)
	}
	defer tx.Rollback()

	var postExists bool
	err = tx.QueryRowContext(ctx,
		`SELECT TRUE FROM posts WHERE id = $1 AND status = 'published'`, postID).Scan(&postExists)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("post %s", postID)
	}
	if err != nil {
		return nil, fmt.Errorf("check post: %w", err)
	}

	if parentID != nil {
		var parentPostID uuid.UUID
		var grandparent *uuid.UUID
		err = tx.QueryRowContext(ctx,
			`SELECT post_id, parent_id FROM comments WHERE id = $1`, *parentID).
			Scan(&parentPostID, &grandparent)
		if err == sql.ErrNoRows {
			return nil, errs.NotFoundf("parent comment %s", *parentID)
		}
		if err != nil {
			return nil, fmt.Errorf("check parent comment: %w", err)
		}
		if parentPostID != postID {
			return nil, errs.Invalidf("parent comment belongs to a different post")
		}
		// Flatten: replying to a reply attaches to that reply's parent.
		if grandparent != nil {
			parentID = grandparent
		}
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO comments (post_id, user_id, parent_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, post_id, user_id, parent_id, content, is_approved, created_at
	`, postID, userID, parentID, content)

	var c models.Comment
	err = row.Scan(&c.ID, &c.PostID, &c.UserID, &c.ParentID, &c.Content, &c.IsApproved, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit comment tx: %w", err)
	}
	return &c, nil
}

// ListForPost returns a post's comment thread as the viewer is allowed to
// see it: top-level comments newest first, each carrying its replies oldest
// first. The visibility predicate is applied to every comment and reply
// independently, so a reader can see their own pending reply under an
// approved parent while guests cannot.
func (s *CommentStore) ListForPost(postID uuid.UUID, viewer models.Viewer) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var topLevel []models.Comment
	replies := make(map[uuid.UUID][]models.Comment)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if !c.VisibleTo(viewer) {
			continue
		}
		if c.ParentID != nil {
			replies[*c.ParentID] = append(replies[*c.ParentID], *c)
		} else {
			topLevel = append(topLevel, *c)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest thread first; replies stay in chronological order.
	out := make([]models.Comment, 0, len(topLevel))
	for i := len(topLevel) - 1; i >= 0; i-- {
		c := topLevel[i]
		c.Replies = replies[c.ID]
		out = append(out, c)
	}
	return out, nil
}

// ListPending returns unapproved comments for the moderation queue,
// oldest first.
func (s *CommentStore) ListPending() ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE NOT c.is_approved
		ORDER BY c.created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list pending comments: %w", err)
	}
	return collectComments(rows)
}

// ListAll returns every comment newest first, for the admin panel.
func (s *CommentStore) ListAll(limit, offset int) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT `+commentColumns+`
		FROM comments c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return collectComments(rows)
}

func collectComments(rows *sql.Rows) ([]models.Comment, error) {
	defer rows.Close()
	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// CountPending returns the size of the moderation queue.
func (s *CommentStore) CountPending() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE NOT is_approved`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending comments: %w", err)
	}
	return count, nil
}

// SetApproval approves or unapproves a comment. Only moderators may flip
// the flag; the operation is idempotent.
func (s *CommentStore) SetApproval(viewer models.Viewer, commentID uuid.UUID, approved bool) error {
	if !viewer.IsModerator() {
		return errs.Forbiddenf("only moderators can moderate comments")
	}
	res, err := s.db.Exec(`UPDATE comments SET is_approved = $1 WHERE id = $2`, approved, commentID)
	if err != nil {
		return fmt.Errorf("set comment approval: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("comment %s", commentID)
	}
	return nil
}

// Delete removes a comment and all of its replies. Moderator only; hard
// delete, one transaction.
func (s *CommentStore) Delete(ctx context.Context, viewer models.Viewer, commentID uuid.UUID) error {
	if !viewer.IsModerator() {
		return errs.Forbiddenf("only moderators can delete comments")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	// Replies first, then the comment itself. The FK also cascades; the
	// explicit delete keeps the affected-rows count honest.
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE parent_id = $1`, commentID); err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.NotFoundf("comment %s", commentID)
	}

	return tx.Commit()
}
