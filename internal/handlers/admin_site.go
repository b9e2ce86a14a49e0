// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"khoborpress/internal/errs"
	"khoborpress/internal/models"
)

// --- Videos ---

type videoInput struct {
	Title        string  `json:"title"`
	TitleBn      string  `json:"title_bn"`
	YouTubeID    string  `json:"youtube_id"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Status       string  `json:"status"`
}

// ListVideos returns all videos for the panel.
func (h *Admin) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.videos.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, videos)
}

// CreateVideo adds a YouTube clip to the video section.
func (h *Admin) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var in videoInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.Title == "" || in.YouTubeID == "" {
		respondError(w, errs.Invalidf("title and youtube_id are required"))
		return
	}

	video, err := h.videos.Create(&models.Video{
		Title:        in.Title,
		TitleBn:      in.TitleBn,
		YouTubeID:    in.YouTubeID,
		ThumbnailURL: in.ThumbnailURL,
		Status:       models.PostStatus(in.Status),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, video)
}

// UpdateVideo updates a video entry.
func (h *Admin) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.videos.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}

	var in videoInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.Title == "" || in.YouTubeID == "" {
		respondError(w, errs.Invalidf("title and youtube_id are required"))
		return
	}

	existing.Title = in.Title
	existing.TitleBn = in.TitleBn
	existing.YouTubeID = in.YouTubeID
	existing.ThumbnailURL = in.ThumbnailURL
	existing.Status = models.PostStatus(in.Status)
	if err := h.videos.Update(existing); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

// DeleteVideo removes a video entry.
func (h *Admin) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.videos.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "video deleted")
}

// --- Opinions ---

type opinionInput struct {
	AuthorName  string  `json:"author_name"`
	AuthorTitle *string `json:"author_title"`
	AuthorImage *string `json:"author_image"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Status      string  `json:"status"`
}

// ListOpinions returns all opinion columns for the panel.
func (h *Admin) ListOpinions(w http.ResponseWriter, r *http.Request) {
	opinions, err := h.opinions.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, opinions)
}

// CreateOpinion adds an opinion column.
func (h *Admin) CreateOpinion(w http.ResponseWriter, r *http.Request) {
	var in opinionInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.AuthorName == "" || in.Title == "" || in.Content == "" {
		respondError(w, errs.Invalidf("author_name, title, and content are required"))
		return
	}

	opinion, err := h.opinions.Create(&models.Opinion{
		AuthorName:  in.AuthorName,
		AuthorTitle: in.AuthorTitle,
		AuthorImage: in.AuthorImage,
		Title:       in.Title,
		Content:     in.Content,
		Status:      models.PostStatus(in.Status),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, opinion)
}

// UpdateOpinion updates an opinion column.
func (h *Admin) UpdateOpinion(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.opinions.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}

	var in opinionInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.AuthorName == "" || in.Title == "" || in.Content == "" {
		respondError(w, errs.Invalidf("author_name, title, and content are required"))
		return
	}

	existing.AuthorName = in.AuthorName
	existing.AuthorTitle = in.AuthorTitle
	existing.AuthorImage = in.AuthorImage
	existing.Title = in.Title
	existing.Content = in.Content
	existing.Status = models.PostStatus(in.Status)
	if err := h.opinions.Update(existing); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

// DeleteOpinion removes an opinion column.
func (h *Admin) DeleteOpinion(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.opinions.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "opinion deleted")
}

// --- Ads ---

type adInput struct {
	Name      string     `json:"name"`
	Placement string     `json:"placement"`
	ImageURL  string     `json:"image_url"`
	TargetURL string     `json:"target_url"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	IsActive  bool       `json:"is_active"`
}

func (in *adInput) validate() error {
	if in.Name == "" || in.ImageURL == "" || in.TargetURL == "" {
		return errs.Invalidf("name, image_url, and target_url are required")
	}
	switch models.AdPlacement(in.Placement) {
	case models.AdPlacementHeader, models.AdPlacementSidebar,
		models.AdPlacementInline, models.AdPlacementFooter:
	default:
		return errs.Invalidf("unknown placement %q", in.Placement)
	}
	if in.StartsAt != nil && in.EndsAt != nil && in.EndsAt.Before(*in.StartsAt) {
		return errs.Invalidf("ends_at is before starts_at")
	}
	return nil
}

// ListAds returns all ads for the panel.
func (h *Admin) ListAds(w http.ResponseWriter, r *http.Request) {
	ads, err := h.ads.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ads)
}

// CreateAd adds a banner ad.
func (h *Admin) CreateAd(w http.ResponseWriter, r *http.Request) {
	var in adInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}

	ad, err := h.ads.Create(&models.Ad{
		Name:      in.Name,
		Placement: models.AdPlacement(in.Placement),
		ImageURL:  in.ImageURL,
		TargetURL: in.TargetURL,
		StartsAt:  in.StartsAt,
		EndsAt:    in.EndsAt,
		IsActive:  in.IsActive,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ad)
}

// UpdateAd updates a banner ad.
func (h *Admin) UpdateAd(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	existing, err := h.ads.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing == nil {
		notFound(w)
		return
	}

	var in adInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := in.validate(); err != nil {
		respondError(w, err)
		return
	}

	existing.Name = in.Name
	existing.Placement = models.AdPlacement(in.Placement)
	existing.ImageURL = in.ImageURL
	existing.TargetURL = in.TargetURL
	existing.StartsAt = in.StartsAt
	existing.EndsAt = in.EndsAt
	existing.IsActive = in.IsActive
	if err := h.ads.Update(existing); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, existing)
}

// DeleteAd removes a banner ad.
func (h *Admin) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.ads.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "ad deleted")
}

// --- Newsletter ---

// ListSubscribers returns the full newsletter list for export.
func (h *Admin) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.newsletter.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

// --- Settings ---

// GetSettings returns every site setting.
func (h *Admin) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.All()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings upserts the submitted settings in one transaction.
func (h *Admin) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in models.SiteSettings
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if len(in) == 0 {
		respondError(w, errs.Invalidf("no settings submitted"))
		return
	}

	if err := h.settings.SetMany(r.Context(), in); err != nil {
		respondError(w, err)
		return
	}
	h.pageCache.InvalidateAll(r.Context())
	respondMessage(w, http.StatusOK, "settings saved")
}
