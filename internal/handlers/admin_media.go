package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"khoborpress/internal/imaging"
	"khoborpress/internal/middleware"
	"khoborpress/internal/models"
)

const (
	// maxUploadSize is the maximum allowed file upload size (50 MB).
	maxUploadSize = 50 << 20
)

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// variantTypes are image types that get responsive WebP variants.
// GIF is excluded to preserve animation; SVG is vector.
var variantTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ListMedia returns the media library, newest first.
func (h *Admin) ListMedia(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "object storage is not configured"})
		return
	}
	limit, offset := pagination(r, 50)
	items, err := h.media.List(limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// UploadMedia handles a multipart file upload: the original goes to S3
// as-is, raster images additionally get responsive WebP variants.
func (h *Admin) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "object storage is not configured"})
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "file too large, maximum size is 50 MB"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "no file provided"})
		return
	}
	defer file.Close()

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to read file"})
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType reports XML for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedMediaTypes[contentType] {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("file type %q is not allowed", contentType)})
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to process file"})
		return
	}
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to read file"})
		return
	}

	// Unique storage key, partitioned by year/month.
	now := time.Now()
	ext := filepath.Ext(header.Filename)
	fileID := uuid.New().String()
	s3Key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), fileID, ext)

	ctx := r.Context()
	url, err := h.storage.Put(ctx, s3Key, contentType, fileBytes)
	if err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "failed to upload file"})
		return
	}

	media := &models.Media{
		FileName:    header.Filename,
		S3Key:       s3Key,
		URL:         url,
		ContentType: contentType,
		SizeBytes:   int64(len(fileBytes)),
		UploadedBy:  sess.UserID,
	}

	// Responsive variants for raster images. A variant failure only costs
	// the variants, never the upload.
	if variantTypes[contentType] {
		processed, err := imaging.GenerateVariants(fileBytes, nil)
		if err != nil {
			slog.Warn("variant generation failed", "error", err, "key", s3Key)
		}
		for _, p := range processed {
			vKey := fmt.Sprintf("media/%d/%02d/%s_%s.webp", now.Year(), now.Month(), fileID, p.Name)
			vURL, err := h.storage.Put(ctx, vKey, p.ContentType, p.Data)
			if err != nil {
				slog.Warn("variant upload failed", "error", err, "key", vKey)
				continue
			}
			media.Variants = append(media.Variants, models.MediaVariant{
				Name:      p.Name,
				S3Key:     vKey,
				URL:       vURL,
				Width:     p.Width,
				Height:    p.Height,
				SizeBytes: int64(len(p.Data)),
			})
		}
	}

	created, err := h.media.Create(ctx, media)
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// DeleteMedia removes a media item from the database and cleans up its
// blobs best-effort.
func (h *Admin) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "object storage is not configured"})
		return
	}

	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	media, err := h.media.FindByID(id)
	if err != nil {
		respondError(w, err)
		return
	}
	if media == nil {
		notFound(w)
		return
	}

	if err := h.media.Delete(id); err != nil {
		respondError(w, err)
		return
	}

	ctx := r.Context()
	if err := h.storage.Delete(ctx, media.S3Key); err != nil {
		slog.Warn("s3 original delete failed", "error", err, "key", media.S3Key)
	}
	for _, v := range media.Variants {
		if err := h.storage.Delete(ctx, v.S3Key); err != nil {
			slog.Warn("s3 variant delete failed", "error", err, "key", v.S3Key)
		}
	}

	respondMessage(w, http.StatusOK, "media deleted")
}
