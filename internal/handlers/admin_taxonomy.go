// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"khoborpress/internal/errs"
	"khoborpress/internal/models"
	"khoborpress/internal/slug"
)

// categoryInput is the request body for categories and subcategories.
type categoryInput struct {
	Name   string `json:"name"`
	NameBn string `json:"name_bn"`
	Slug   string `json:"slug"`
}

func (in *categoryInput) validate() error {
	if in.Name == "" || in.NameBn == "" {
		return errs.Invalidf("name and name_bn are required")
	}
	return nil
}

// ListCategories returns all categories with their subcategories.
func (h *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.ListWithSubcategories()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

// CreateCategory creates a category.
func (h *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}

	cat, err := h.categories.Create(&models.Category{Name: in.Name, NameBn: in.NameBn, Slug: in.Slug})
	if err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, cat)
}

// UpdateCategory updates a category.
func (h *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.categories.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}

	var in categoryInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}

	existing.Name = in.Name
	existing.NameBn = in.NameBn
	if in.Slug != "" {
		existing.Slug = in.Slug
	}
	if err := h.categories.Update(existing); err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, existing)
}

// DeleteCategory removes a category and its subcategories. Fails with a
// conflict while any post still uses it as primary category.
func (h *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.categories.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondMessage(w, http.StatusOK, "category deleted")
}

// CreateSubcategory creates a subcategory under the {id} category.
func (h *Admin) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	parentID, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in categoryInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}

	sub, err := h.categories.CreateSubcategory(&models.Subcategory{
		CategoryID: parentID,
		Name:       in.Name,
		NameBn:     in.NameBn,
		Slug:       in.Slug,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, sub)
}

// UpdateSubcategory updates a subcategory.
func (h *Admin) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.categories.FindSubcategoryByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}

	var in categoryInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}

	existing.Name = in.Name
	existing.NameBn = in.NameBn
	if in.Slug != "" {
		existing.Slug = in.Slug
	}
	if err := h.categories.UpdateSubcategory(existing); err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, existing)
}

// DeleteSubcategory removes a subcategory; posts referencing it are unset.
func (h *Admin) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.categories.DeleteSubcategory(id); err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondMessage(w, http.StatusOK, "subcategory deleted")
}

// ListTags returns all tags with usage counts.
func (h *Admin) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tags)
}

// CreateTag creates a tag.
func (h *Admin) CreateTag(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.Name == "" {
		respondError(w, errs.Invalidf("name is required"))
		return
	}
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Name)
	}

	tag, err := h.tags.Create(&models.Tag{Name: in.Name, Slug: in.Slug})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tag)
}

// UpdateTag updates a tag.
func (h *Admin) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.tags.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}

	var in struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.Name == "" {
		respondError(w, errs.Invalidf("name is required"))
		return
	}

	existing.Name = in.Name
	if in.Slug != "" {
		existing.Slug = in.Slug
	}
	if err := h.tags.Update(existing); err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, existing)
}

// DeleteTag removes a tag from every post carrying it.
func (h *Admin) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.tags.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondMessage(w, http.StatusOK, "tag deleted")
}
