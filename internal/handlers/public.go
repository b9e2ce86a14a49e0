// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"khoborpress/internal/bangla"
	"khoborpress/internal/cache"
	"khoborpress/internal/errs"
	"khoborpress/internal/markdown"
	"khoborpress/internal/middleware"
	"khoborpress/internal/models"
	"khoborpress/internal/store"
)

// Public groups the reader-facing HTTP handlers. Section and article
// payloads are cached in Valkey; comment threads never are, since their
// contents depend on who is looking.
type Public struct {
	posts       *store.PostStore
	categories  *store.CategoryStore
	tags        *store.TagStore
	comments    *store.CommentStore
	videos      *store.VideoStore
	opinions    *store.OpinionStore
	ads         *store.AdStore
	newsletter  *store.NewsletterStore
	settings    *store.SiteSettingStore
	pageCache   *cache.PageCache
	viewCounter *cache.ViewCounter
}

// NewPublic creates the Public handler group.
func NewPublic(
	posts *store.PostStore,
	categories *store.CategoryStore,
	tags *store.TagStore,
	comments *store.CommentStore,
	videos *store.VideoStore,
	opinions *store.OpinionStore,
	ads *store.AdStore,
	newsletter *store.NewsletterStore,
	settings *store.SiteSettingStore,
	pageCache *cache.PageCache,
	viewCounter *cache.ViewCounter,
) *Public {
	return &Public{
		posts:       posts,
		categories:  categories,
		tags:        tags,
		comments:    comments,
		videos:      videos,
		opinions:    opinions,
		ads:         ads,
		newsletter:  newsletter,
		settings:    settings,
		pageCache:   pageCache,
		viewCounter: viewCounter,
	}
}

// serveCached writes a cached payload if present. Returns true on a hit.
func (h *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	body, ok := h.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
	return true
}

// respondAndCache writes v as JSON and stores the payload under key.
func (h *Public) respondAndCache(w http.ResponseWriter, r *http.Request, key string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("response encode failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}
	h.pageCache.Set(r.Context(), key, body)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// articleView decorates a post with rendered HTML and a Bengali date line.
type articleView struct {
	models.Post
	ContentHTML string `json:"content_html"`
	DateBn      string `json:"date_bn"`
}

func newArticleView(p models.Post) articleView {
	html, err := markdown.ToHTML(p.Content)
	if err != nil {
		slog.Warn("markdown render failed", "post_id", p.ID, "error", err)
		html = p.Content
	}
	v := articleView{Post: p, ContentHTML: html}
	if p.PublishedAt != nil {
		v.DateBn = bangla.DateWithWeekday(*p.PublishedAt)
	}
	return v
}

// Homepage returns the front page payload: the pinned featured posts in
// slot order, the latest stream, the most read, plus fresh videos and
// opinion columns.
func (h *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	key := cache.HomepageKey()
	if h.serveCached(w, r, key) {
		return
	}

	featured, err := h.posts.ListFeatured()
	if err != nil {
		respondError(w, err)
		return
	}
	latest, err := h.posts.ListPublished(20, 0)
	if err != nil {
		respondError(w, err)
		return
	}
	popular, err := h.posts.ListPopular(5)
	if err != nil {
		respondError(w, err)
		return
	}
	videos, err := h.videos.ListPublished(6)
	if err != nil {
		respondError(w, err)
		return
	}
	opinions, err := h.opinions.ListPublished(4)
	if err != nil {
		respondError(w, err)
		return
	}

	h.respondAndCache(w, r, key, map[string]any{
		"featured": featured,
		"latest":   latest,
		"popular":  popular,
		"videos":   videos,
		"opinions": opinions,
	})
}

// Navigation returns the category tree for the site menu.
func (h *Public) Navigation(w http.ResponseWriter, r *http.Request) {
	key := cache.SectionKey("nav", "_all", 0)
	if h.serveCached(w, r, key) {
		return
	}

	cats, err := h.categories.ListWithSubcategories()
	if err != nil {
		respondError(w, err)
		return
	}
	h.respondAndCache(w, r, key, cats)
}

// GetPost returns one published article by slug and counts the view.
func (h *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	key := cache.PostKey(slug)
	if body, ok := h.pageCache.Get(r.Context(), key); ok {
		// Views still count on cache hits.
		if id := postIDFromPayload(body); id != uuid.Nil {
			h.viewCounter.Increment(r.Context(), id)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	post, err := h.posts.FindBySlug(slug)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		notFound(w)
		return
	}

	h.viewCounter.Increment(r.Context(), post.ID)
	h.respondAndCache(w, r, key, newArticleView(*post))
}

// postIDFromPayload pulls the post id out of a cached article payload.
func postIDFromPayload(body []byte) uuid.UUID {
	var v struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return uuid.Nil
	}
	return v.ID
}

// pageParam reads the ?page= query parameter, first page is 0.
func pageParam(r *http.Request) int {
	p, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || p < 0 {
		return 0
	}
	return p
}

const sectionPageSize = 20

// Category returns a category's published posts, newest first.
func (h *Public) Category(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page := pageParam(r)

	key := cache.SectionKey("category", slug, page)
	if h.serveCached(w, r, key) {
		return
	}

	cat, err := h.categories.FindBySlug(slug)
	if err != nil {
		respondError(w, err)
		return
	}
	if cat == nil {
		notFound(w)
		return
	}

	posts, err := h.posts.ListByCategory(cat.ID, sectionPageSize, page*sectionPageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	subs, err := h.categories.ListSubcategories(cat.ID)
	if err != nil {
		respondError(w, err)
		return
	}

	h.respondAndCache(w, r, key, map[string]any{
		"category":      cat,
		"subcategories": subs,
		"posts":         posts,
		"page":          page,
	})
}

// Subcategory returns a subcategory's published posts, newest first.
func (h *Public) Subcategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page := pageParam(r)

	key := cache.SectionKey("subcategory", slug, page)
	if h.serveCached(w, r, key) {
		return
	}

	sub, err := h.categories.FindSubcategoryBySlug(slug)
	if err != nil {
		respondError(w, err)
		return
	}
	if sub == nil {
		notFound(w)
		return
	}

	posts, err := h.posts.ListBySubcategory(sub.ID, sectionPageSize, page*sectionPageSize)
	if err != nil {
		respondError(w, err)
		return
	}

	h.respondAndCache(w, r, key, map[string]any{
		"subcategory": sub,
		"posts":       posts,
		"page":        page,
	})
}

// Tag returns the published posts carrying a tag, newest first.
func (h *Public) Tag(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page := pageParam(r)

	key := cache.SectionKey("tag", slug, page)
	if h.serveCached(w, r, key) {
		return
	}

	tag, err := h.tags.FindBySlug(slug)
	if err != nil {
		respondError(w, err)
		return
	}
	if tag == nil {
		notFound(w)
		return
	}

	posts, err := h.posts.ListByTag(tag.ID, sectionPageSize, page*sectionPageSize)
	if err != nil {
		respondError(w, err)
		return
	}

	h.respondAndCache(w, r, key, map[string]any{
		"tag":   tag,
		"posts": posts,
		"page":  page,
	})
}

// ListComments returns a post's comment thread as the current viewer may
// see it. Never cached: the same thread looks different to a guest, the
// comment's author, and a moderator.
func (h *Public) ListComments(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.posts.FindBySlug(slug)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		notFound(w)
		return
	}

	viewer := middleware.ViewerFromCtx(r.Context())
	comments, err := h.comments.ListForPost(post.ID, viewer)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, comments)
}

// CreateComment posts a comment on an article. Requires a signed-in user;
// the comment stays invisible to others until a moderator approves it.
func (h *Public) CreateComment(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "sign in to comment"})
		return
	}

	slug := chi.URLParam(r, "slug")
	post, err := h.posts.FindBySlug(slug)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		notFound(w)
		return
	}

	var in struct {
		Content  string     `json:"content"`
		ParentID *uuid.UUID `json:"parent_id"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), post.ID, sess.UserID, in.ParentID, in.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, comment)
}

// Videos returns the published video section.
func (h *Public) Videos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.ListPublished(24)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, videos)
}

// Opinions returns the published opinion columns.
func (h *Public) Opinions(w http.ResponseWriter, r *http.Request) {
	opinions, err := h.opinions.ListPublished(24)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opinions)
}

// Ads returns the currently running ads for a placement.
func (h *Public) Ads(w http.ResponseWriter, r *http.Request) {
	placement := models.AdPlacement(chi.URLParam(r, "placement"))
	switch placement {
	case models.AdPlacementHeader, models.AdPlacementSidebar,
		models.AdPlacementInline, models.AdPlacementFooter:
	default:
		respondError(w, errs.Invalidf("unknown placement %q", placement))
		return
	}

	ads, err := h.ads.ListRunning(placement)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ads)
}

// Subscribe adds an email to the newsletter list.
func (h *Public) Subscribe(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	sub, err := h.newsletter.Subscribe(in.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

// Unsubscribe removes an email from the newsletter list.
func (h *Public) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := h.newsletter.Unsubscribe(in.Email); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "unsubscribed")
}

// SiteSettings returns the public site configuration.
func (h *Public) SiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.All()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
