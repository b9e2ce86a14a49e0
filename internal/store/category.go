// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"khoborpress/internal/errs"
	"khoborpress/internal/models"
)

// CategoryStore manages categories and their subcategories.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, name_bn, slug, created_at, updated_at`
const subcategoryColumns = `id, category_id, name, name_bn, slug, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.NameBn, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// scanSubcategory scans a row into a Subcategory struct.
func scanSubcategory(scanner interface{ Scan(...any) error }) (*models.Subcategory, error) {
	var sc models.Subcategory
	err := scanner.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.NameBn, &sc.Slug, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

// List returns all categories ordered by name, with post counts from the
// many-to-many association.
func (s *CategoryStore) List() ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.name_bn, c.slug, c.created_at, c.updated_at,
		       COUNT(pc.post_id) AS post_count
		FROM categories c
		LEFT JOIN post_categories pc ON pc.category_id = c.id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(&c.ID, &c.Name, &c.NameBn, &c.Slug, &c.CreatedAt, &c.UpdatedAt, &c.PostCount)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListWithSubcategories returns all categories with their subcategories
// attached, for the site navigation and the post editor.
func (s *CategoryStore) ListWithSubcategories() ([]models.Category, error) {
	cats, err := s.List()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT ` + subcategoryColumns + ` FROM subcategories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	byCategory := make(map[uuid.UUID][]models.Subcategory)
	for rows.Next() {
		sc, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		byCategory[sc.CategoryID] = append(byCategory[sc.CategoryID], *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cats {
		cats[i].Subcategories = byCategory[cats[i].ID]
	}
	return cats, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	row := s.db.QueryRow(`
		INSERT INTO categories (name, name_bn, slug)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.NameBn, c.Slug,
	)
	result, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, errs.Conflictf("category slug %q already exists", c.Slug)
	}
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE categories SET name = $1, name_bn = $2, slug = $3, updated_at = NOW()
		WHERE id = $4
	`, c.Name, c.NameBn, c.Slug, c.ID)
	if isUniqueViolation(err) {
		return errs.Conflictf("category slug %q already exists", c.Slug)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Its subcategories cascade-delete.
// Fails if any post still uses it as primary category (FK restriction).
func (s *CategoryStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id)
	if isForeignKeyViolation(err) {
		return errs.Conflictf("category is still the primary category of existing posts")
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// --- Subcategories ---

// ListSubcategories returns the subcategories of one category.
func (s *CategoryStore) ListSubcategories(categoryID uuid.UUID) ([]models.Subcategory, error) {
	rows, err := s.db.Query(`
		SELECT `+subcategoryColumns+` FROM subcategories
		WHERE category_id = $1 ORDER BY name
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var items []models.Subcategory
	for rows.Next() {
		sc, err := scanSubcategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		items = append(items, *sc)
	}
	return items, rows.Err()
}

// FindSubcategoryByID retrieves a subcategory by ID. Returns nil if not found.
func (s *CategoryStore) FindSubcategoryByID(id uuid.UUID) (*models.Subcategory, error) {
	row := s.db.QueryRow(`SELECT `+subcategoryColumns+` FROM subcategories WHERE id = $1`, id)
	sc, err := scanSubcategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by id: %w", err)
	}
	return sc, nil
}

// FindSubcategoryBySlug retrieves a subcategory by slug. Returns nil if not found.
func (s *CategoryStore) FindSubcategoryBySlug(slug string) (*models.Subcategory, error) {
	row := s.db.QueryRow(`SELECT `+subcategoryColumns+` FROM subcategories WHERE slug = $1`, slug)
	sc, err := scanSubcategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find subcategory by slug: %w", err)
	}
	return sc, nil
}

// CreateSubcategory inserts a new subcategory under its owning category.
func (s *CategoryStore) CreateSubcategory(sc *models.Subcategory) (*models.Subcategory, error) {
	parent, err := s.FindByID(sc.CategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, errs.NotFoundf("category %s", sc.CategoryID)
	}

	row := s.db.QueryRow(`
		INSERT INTO subcategories (category_id, name, name_bn, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING `+subcategoryColumns,
		sc.CategoryID, sc.Name, sc.NameBn, sc.Slug,
	)
	result, err := scanSubcategory(row)
	if isUniqueViolation(err) {
		return nil, errs.Conflictf("subcategory slug %q already exists", sc.Slug)
	}
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return result, nil
}

// UpdateSubcategory modifies an existing subcategory. The owning category
// cannot change; move posts instead.
func (s *CategoryStore) UpdateSubcategory(sc *models.Subcategory) error {
	_, err := s.db.Exec(`
		UPDATE subcategories SET name = $1, name_bn = $2, slug = $3, updated_at = NOW()
		WHERE id = $4
	`, sc.Name, sc.NameBn, sc.Slug, sc.ID)
	if isUniqueViolation(err) {
		return errs.Conflictf("subcategory slug %q already exists", sc.Slug)
	}
	if err != nil {
		return fmt.Errorf("update subcategory: %w", err)
	}
	return nil
}

// DeleteSubcategory removes a subcategory. Posts pointing at it get their
// subcategory_id nulled (ON DELETE SET NULL).
func (s *CategoryStore) DeleteSubcategory(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}
