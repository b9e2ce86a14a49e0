package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"khoborpress/internal/errs"
)

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid", errs.Invalidf("bad input"), http.StatusUnprocessableEntity},
		{"not found", errs.NotFoundf("no such post"), http.StatusNotFound},
		{"forbidden", errs.Forbiddenf("not yours"), http.StatusForbidden},
		{"conflict", errs.Conflictf("slug taken"), http.StatusConflict},
		{"wrapped invalid", errs.Invalidf("outer: %w", errs.ErrInvalid), http.StatusUnprocessableEntity},
		{"unclassified", errors.New("pq: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("respondError(%v): got status %d, want %d", tt.err, rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Errorf("500 body leaks internals: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("500 body missing generic message: %s", rec.Body.String())
	}
}

func TestDecodeBody_Malformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	var dst struct{ Title string }
	err := decodeBody(req, &dst)
	if !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("decodeBody malformed: got %v, want ErrInvalid", err)
	}
}

func TestPagination_Bounds(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 25, 0},
		{"?limit=10&offset=40", 10, 40},
		{"?limit=0", 25, 0},
		{"?limit=500", 25, 0},
		{"?limit=abc&offset=-3", 25, 0},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		limit, offset := pagination(req, 25)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("pagination(%q) = (%d, %d), want (%d, %d)",
				tt.query, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestURLID_Malformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/posts/nope", nil)
	req = withChiURLParam(req, "id", "nope")

	if _, err := urlID(req); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("urlID malformed: got %v, want ErrInvalid", err)
	}
}

func TestCreateComment_RequiresSession(t *testing.T) {
	// Session check comes before any store access, so a bare handler works.
	public := &Public{}

	req := httptest.NewRequest(http.MethodPost, "/posts/some-article/comments",
		strings.NewReader(`{"content":"hi"}`))
	rec := httptest.NewRecorder()
	public.CreateComment(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("CreateComment without session: got status %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAds_UnknownPlacement(t *testing.T) {
	// Placement is validated before the store is touched.
	public := &Public{}

	req := httptest.NewRequest(http.MethodGet, "/ads/popup", nil)
	req = withChiURLParam(req, "placement", "popup")
	rec := httptest.NewRecorder()
	public.Ads(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Ads unknown placement: got status %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestMediaEndpoints_WithoutStorage(t *testing.T) {
	// Admin handlers answer 503 when object storage is not configured.
	admin := &Admin{}

	req := httptest.NewRequest(http.MethodGet, "/admin/media", nil)
	rec := httptest.NewRecorder()
	admin.ListMedia(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ListMedia without storage: got status %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
