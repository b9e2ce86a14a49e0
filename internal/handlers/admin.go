// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"khoborpress/internal/cache"
	"khoborpress/internal/errs"
	"khoborpress/internal/middleware"
	"khoborpress/internal/models"
	"khoborpress/internal/slug"
	"khoborpress/internal/storage"
	"khoborpress/internal/store"
)

// Admin groups the panel HTTP handlers. Editors and admins reach these
// routes; role restrictions beyond that are enforced per route group.
type Admin struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	tags       *store.TagStore
	comments   *store.CommentStore
	users      *store.UserStore
	videos     *store.VideoStore
	opinions   *store.OpinionStore
	ads        *store.AdStore
	newsletter *store.NewsletterStore
	settings   *store.SiteSettingStore
	media      *store.MediaStore
	storage    *storage.Client
	pageCache  *cache.PageCache
}

// NewAdmin creates the Admin handler group.
func NewAdmin(
	posts *store.PostStore,
	categories *store.CategoryStore,
	tags *store.TagStore,
	comments *store.CommentStore,
	users *store.UserStore,
	videos *store.VideoStore,
	opinions *store.OpinionStore,
	ads *store.AdStore,
	newsletter *store.NewsletterStore,
	settings *store.SiteSettingStore,
	media *store.MediaStore,
	storageClient *storage.Client,
	pageCache *cache.PageCache,
) *Admin {
	return &Admin{
		posts:      posts,
		categories: categories,
		tags:       tags,
		comments:   comments,
		users:      users,
		videos:     videos,
		opinions:   opinions,
		ads:        ads,
		newsletter: newsletter,
		settings:   settings,
		media:      media,
		storage:    storageClient,
		pageCache:  pageCache,
	}
}

// urlID parses the {id} route parameter as a UUID.
func urlID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.Invalidf("malformed id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(r *http.Request, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// Dashboard returns the panel overview counters.
func (h *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	postCount, err := h.posts.Count()
	if err != nil {
		respondError(w, err)
		return
	}
	pendingComments, err := h.comments.CountPending()
	if err != nil {
		respondError(w, err)
		return
	}
	subscriberCount, err := h.newsletter.Count()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{
		"posts":            postCount,
		"pending_comments": pendingComments,
		"subscribers":      subscriberCount,
	})
}

// postInput is the request body for creating or updating a post. The
// taxonomy fields travel with the editorial ones; the post editor always
// submits the full assignment.
type postInput struct {
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	Content          string      `json:"content"`
	Excerpt          *string     `json:"excerpt"`
	FeaturedImage    *string     `json:"featured_image"`
	Status           string      `json:"status"`
	CategoryIDs      []uuid.UUID `json:"category_ids"`
	SubcategoryID    *uuid.UUID  `json:"subcategory_id"`
	TagIDs           []uuid.UUID `json:"tag_ids"`
	IsFeatured       bool        `json:"is_featured"`
	FeaturedPosition *int        `json:"featured_position"`
}

func (in *postInput) taxonomy() store.TaxonomyInput {
	return store.TaxonomyInput{
		CategoryIDs:      in.CategoryIDs,
		SubcategoryID:    in.SubcategoryID,
		TagIDs:           in.TagIDs,
		IsFeatured:       in.IsFeatured,
		FeaturedPosition: in.FeaturedPosition,
	}
}

// ListPosts returns posts for the panel, newest first.
func (h *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 25)
	posts, err := h.posts.List(limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

// GetPost returns one post with its full taxonomy.
func (h *Admin) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	post, err := h.posts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		notFound(w)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// CreatePost creates a post with its taxonomy in one request.
func (h *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in postInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.Title == "" || in.Content == "" {
		respondError(w, errs.Invalidf("title and content are required"))
		return
	}
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Title)
	}

	sess := middleware.SessionFromCtx(r.Context())
	post, err := h.posts.Create(r.Context(), &models.Post{
		Title:         in.Title,
		Slug:          in.Slug,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		FeaturedImage: in.FeaturedImage,
		Status:        models.PostStatus(in.Status),
		AuthorID:      sess.UserID,
	}, in.taxonomy())
	if err != nil {
		respondError(w, err)
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusCreated, post)
}

// UpdatePost updates a post's editorial fields and reapplies its taxonomy.
func (h *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.posts.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}

	var in postInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.Title == "" || in.Content == "" {
		respondError(w, errs.Invalidf("title and content are required"))
		return
	}
	if in.Slug == "" {
		in.Slug = existing.Slug
	}

	existing.Title = in.Title
	existing.Slug = in.Slug
	existing.Content = in.Content
	existing.Excerpt = in.Excerpt
	existing.FeaturedImage = in.FeaturedImage
	existing.Status = models.PostStatus(in.Status)
	if err := h.posts.Update(r.Context(), existing); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.posts.SaveTaxonomy(r.Context(), id, in.taxonomy())
	if err != nil {
		respondError(w, err)
		return
	}

	h.pageCache.InvalidateAll(r.Context())
	respondJSON(w, http.StatusOK, post)
}

// DeletePost removes a post with its comments and associations.
func (h *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.posts.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondMessage(w, http.StatusOK, "post deleted")
}

// ListAllComments returns the full comment stream for the panel.
func (h *Admin) ListAllComments(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r, 50)
	comments, err := h.comments.ListAll(limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// ListPendingComments returns the moderation queue.
func (h *Admin) ListPendingComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListPending()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// ApproveComment marks a comment as approved.
func (h *Admin) ApproveComment(w http.ResponseWriter, r *http.Request) {
	h.setCommentApproval(w, r, true)
}

// UnapproveComment returns a comment to the pending state.
func (h *Admin) UnapproveComment(w http.ResponseWriter, r *http.Request) {
	h.setCommentApproval(w, r, false)
}

func (h *Admin) setCommentApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	viewer := middleware.ViewerFromCtx(r.Context())
	if err := h.comments.SetApproval(viewer, id, approved); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "comment updated")
}

// DeleteComment removes a comment and its replies.
func (h *Admin) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	viewer := middleware.ViewerFromCtx(r.Context())
	if err := h.comments.Delete(r.Context(), viewer, id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "comment deleted")
}
