// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"khoborpress/internal/errs"
	"khoborpress/internal/models"
)

// PostStore handles all post-related database operations, including the
// taxonomy bookkeeping that keeps the legacy single category reference in
// sync with the ordered many-to-many category set.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, slug, content, excerpt, featured_image, status,
	is_featured, featured_position, category_id, subcategory_id, author_id,
	view_count, published_at, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.Status, &p.IsFeatured, &p.FeaturedPosition, &p.CategoryID,
		&p.SubcategoryID, &p.AuthorID, &p.ViewCount, &p.PublishedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// TaxonomyInput carries a post's full category, subcategory, tag, and
// featured-slot assignment. CategoryIDs is an ordered sequence: the first
// element becomes the primary category. Category and tag sets are applied
// with full-replace semantics; an empty TagIDs clears all tags.
type TaxonomyInput struct {
	CategoryIDs      []uuid.UUID
	SubcategoryID    *uuid.UUID
	TagIDs           []uuid.UUID
	IsFeatured       bool
	FeaturedPosition *int
}

// Create inserts a new post and then applies its taxonomy in a second
// step. The post row needs a primary category up front, so the first
// category id is written directly and SaveTaxonomy reconciles the rest.
func (s *PostStore) Create(ctx context.Context, p *models.Post, tax TaxonomyInput) (*models.Post, error) {
	if len(tax.CategoryIDs) == 0 {
		return nil, errs.Invalidf("post needs at least one category")
	}

	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, content, excerpt, featured_image, status,
		                   category_id, subcategory_id, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+postColumns,
		p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Status,
		tax.CategoryIDs[0], nil, p.AuthorID, p.PublishedAt,
	)
	created, err := scanPost(row)
	if isUniqueViolation(err) {
		return nil, errs.Conflictf("post slug %q already exists", p.Slug)
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.SaveTaxonomy(ctx, created.ID, tax)
}

// Update modifies a post's editorial fields. Taxonomy is saved separately
// through SaveTaxonomy.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4,
			featured_image = $5, status = $6, published_at = $7,
			updated_at = NOW()
		WHERE id = $8
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Status, p.PublishedAt, p.ID)
	if isUniqueViolation(err) {
		return errs.Conflictf("post slug %q already exists", p.Slug)
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// SaveTaxonomy applies a post's full taxonomy assignment in one
// transaction:
//
//   - the first category id becomes the primary (legacy) category_id;
//   - the category and tag association sets are fully replaced, with
//     category ordering preserved via the position column;
//   - a subcategory must belong to one of the assigned categories;
//   - a featured slot claim evicts the previous holder of that position,
//     and clearing the featured flag nulls the position.
//
// Either the whole assignment lands or none of it does.
func (s *PostStore) SaveTaxonomy(ctx context.Context, postID uuid.UUID, in TaxonomyInput) (*models.Post, error) {
	categoryIDs := dedupe(in.CategoryIDs)
	if len(categoryIDs) == 0 {
		return nil, errs.Invalidf("post needs at least one category")
	}
	tagIDs := dedupe(in.TagIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin taxonomy tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the post row for the duration of the assignment.
	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT TRUE FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, errs.NotFoundf("post %s", postID)
	}
	if err != nil {
		return nil, fmt.Errorf("lock post: %w", err)
	}

	// Every referenced category must exist.
	var catCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE id = ANY($1)`, uuidArray(categoryIDs)).Scan(&catCount)
	if err != nil {
		return nil, fmt.Errorf("check categories: %w", err)
	}
	if catCount != len(categoryIDs) {
		return nil, errs.NotFoundf("one or more categories do not exist")
	}

	// A subcategory must hang off one of the assigned categories.
	if in.SubcategoryID != nil {
		var parentID uuid.UUID
		err = tx.QueryRowContext(ctx,
			`SELECT category_id FROM subcategories WHERE id = $1`, *in.SubcategoryID).Scan(&parentID)
		if err == sql.ErrNoRows {
			return nil, errs.NotFoundf("subcategory %s", *in.SubcategoryID)
		}
		if err != nil {
			return nil, fmt.Errorf("check subcategory: %w", err)
		}
		if !containsID(categoryIDs, parentID) {
			return nil, errs.Invalidf("subcategory %s does not belong to any assigned category", *in.SubcategoryID)
		}
	}

	// Featured slot: evict the current holder before claiming the
	// position, inside this same transaction.
	featuredPosition := in.FeaturedPosition
	if in.IsFeatured && in.FeaturedPosition != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE posts SET is_featured = FALSE, featured_position = NULL, updated_at = NOW()
			WHERE is_featured AND featured_position = $1 AND id <> $2
		`, *in.FeaturedPosition, postID)
		if err != nil {
			return nil, fmt.Errorf("evict featured slot: %w", err)
		}
	}
	if !in.IsFeatured {
		// Clearing the flag always nulls the position so no stale slot
		// claim survives.
		featuredPosition = nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE posts SET
			category_id = $1, subcategory_id = $2,
			is_featured = $3, featured_position = $4,
			updated_at = NOW()
		WHERE id = $5
	`, categoryIDs[0], in.SubcategoryID, in.IsFeatured, featuredPosition, postID)
	if err != nil {
		return nil, fmt.Errorf("update post taxonomy: %w", err)
	}

	// Full replace of the ordered category set.
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return nil, fmt.Errorf("clear post categories: %w", err)
	}
	for i, catID := range categoryIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_categories (post_id, category_id, position) VALUES ($1, $2, $3)
		`, postID, catID, i)
		if err != nil {
			return nil, fmt.Errorf("insert post category %s: %w", catID, err)
		}
	}

	// Full replace of the tag set. An empty input legally clears all tags.
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return nil, fmt.Errorf("clear post tags: %w", err)
	}
	if len(tagIDs) > 0 {
		var tagCount int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tags WHERE id = ANY($1)`, uuidArray(tagIDs)).Scan(&tagCount)
		if err != nil {
			return nil, fmt.Errorf("check tags: %w", err)
		}
		if tagCount != len(tagIDs) {
			return nil, errs.NotFoundf("one or more tags do not exist")
		}
		for _, tagID := range tagIDs {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
			`, postID, tagID)
			if err != nil {
				return nil, fmt.Errorf("insert post tag %s: %w", tagID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit taxonomy tx: %w", err)
	}

	return s.FindByID(postID)
}

// FindByID retrieves a post with hydrated category and tag associations.
// Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	if err := s.hydrate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySlug retrieves a published post by slug with hydrated
// associations. Used by the public site. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+` FROM posts WHERE slug = $1 AND status = 'published'
	`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	if err := s.hydrate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// hydrate loads the ordered category set and the tag set for a post.
func (s *PostStore) hydrate(p *models.Post) error {
	catRows, err := s.db.Query(`
		SELECT c.id, c.name, c.name_bn, c.slug, c.created_at, c.updated_at
		FROM post_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
		ORDER BY pc.position
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		c, err := scanCategory(catRows)
		if err != nil {
			return fmt.Errorf("scan post category: %w", err)
		}
		p.Categories = append(p.Categories, *c)
	}
	if err := catRows.Err(); err != nil {
		return err
	}

	tagRows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.created_at
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, p.ID)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		t, err := scanTag(tagRows)
		if err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		p.Tags = append(p.Tags, *t)
	}
	return tagRows.Err()
}

// List returns posts for the admin panel, newest first, without hydrated
// associations (the list view only shows the primary category).
func (s *PostStore) List(limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return collectPosts(rows)
}

// ListPublished returns published posts for the public site, newest first.
func (s *PostStore) ListPublished(limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE status = 'published'
		ORDER BY published_at DESC NULLS LAST
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return collectPosts(rows)
}

// ListByCategory returns published posts associated with the category,
// through the many-to-many set, newest first.
func (s *PostStore) ListByCategory(categoryID uuid.UUID, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE status = 'published'
		  AND id IN (SELECT post_id FROM post_categories WHERE category_id = $1)
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2 OFFSET $3
	`, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by category: %w", err)
	}
	return collectPosts(rows)
}

// ListBySubcategory returns published posts in the subcategory, newest first.
func (s *PostStore) ListBySubcategory(subcategoryID uuid.UUID, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE status = 'published' AND subcategory_id = $1
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2 OFFSET $3
	`, subcategoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by subcategory: %w", err)
	}
	return collectPosts(rows)
}

// ListByTag returns published posts carrying the tag, newest first.
func (s *PostStore) ListByTag(tagID uuid.UUID, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE status = 'published'
		  AND id IN (SELECT post_id FROM post_tags WHERE tag_id = $1)
		ORDER BY published_at DESC NULLS LAST
		LIMIT $2 OFFSET $3
	`, tagID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by tag: %w", err)
	}
	return collectPosts(rows)
}

// ListFeatured returns published featured posts ordered by their slot
// position, for the homepage pinned area.
func (s *PostStore) ListFeatured() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + ` FROM posts
		WHERE status = 'published' AND is_featured
		ORDER BY featured_position ASC NULLS LAST
	`)
	if err != nil {
		return nil, fmt.Errorf("list featured posts: %w", err)
	}
	return collectPosts(rows)
}

// ListPopular returns the most viewed published posts.
func (s *PostStore) ListPopular(limit int) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT `+postColumns+` FROM posts
		WHERE status = 'published'
		ORDER BY view_count DESC, published_at DESC NULLS LAST
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular posts: %w", err)
	}
	return collectPosts(rows)
}

// collectPosts drains rows into a slice.
func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()
	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Count returns the total number of posts.
func (s *PostStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// Delete removes a post. Association rows and comments cascade-delete.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// AddViewCounts applies drained view-counter deltas in one transaction.
// Called by the scheduled sync task.
func (s *PostStore) AddViewCounts(ctx context.Context, counts map[uuid.UUID]int64) error {
	if len(counts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin view count tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE posts SET view_count = view_count + $1 WHERE id = $2`)
	if err != nil {
		return fmt.Errorf("prepare view count update: %w", err)
	}
	defer stmt.Close()

	for id, delta := range counts {
		if _, err := stmt.ExecContext(ctx, delta, id); err != nil {
			return fmt.Errorf("update view count for %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// dedupe removes duplicate ids while preserving first-seen order.
func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// containsID reports whether ids contains want.
func containsID(ids []uuid.UUID, want uuid.UUID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

// uuidArray converts ids to a string slice pgx binds as a Postgres array.
func uuidArray(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
