package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"khoborpress/internal/models"
	"khoborpress/internal/store"
)

// --- Dashboard ---

func TestDashboard_ReturnsCounters(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	env.Admin.Dashboard(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Dashboard: got status %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Dashboard: decode body: %v", err)
	}
	for _, key := range []string{"posts", "pending_comments", "subscribers"} {
		if _, ok := body[key]; !ok {
			t.Errorf("Dashboard: body missing %q counter", key)
		}
	}
}

// --- Posts ---

func TestCreatePost_ValidData(t *testing.T) {
	env := newTestEnv(t)
	editor := seedUser(t, env.DB, env.Users, models.RoleEditor)
	cat := seedCategory(t, env.DB, env.Categories)

	testSlug := "test-handler-post-" + uuid.NewString()[:8]
	t.Cleanup(func() { env.DB.Exec("DELETE FROM posts WHERE slug = $1", testSlug) })

	body := `{"title":"Handler Post","slug":"` + testSlug + `",` +
		`"content":"Body text.","status":"published",` +
		`"category_ids":["` + cat.ID.String() + `"]}`

	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(body))
	req = req.WithContext(ctxWithSession(req.Context(), testSession(editor)))

	rec := httptest.NewRecorder()
	env.Admin.CreatePost(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("CreatePost: got status %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var post models.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("CreatePost: decode body: %v", err)
	}
	if post.AuthorID != editor.ID {
		t.Errorf("CreatePost: author = %s, want session user %s", post.AuthorID, editor.ID)
	}
	if post.CategoryID != cat.ID {
		t.Errorf("CreatePost: primary category = %s, want %s", post.CategoryID, cat.ID)
	}
	if post.PublishedAt == nil {
		t.Error("CreatePost: published post has no published_at")
	}
}

func TestCreatePost_MissingTitle(t *testing.T) {
	// Validation fires before any store access.
	admin := &Admin{}

	req := httptest.NewRequest(http.MethodPost, "/admin/posts",
		strings.NewReader(`{"content":"Body only."}`))
	rec := httptest.NewRecorder()
	admin.CreatePost(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("CreatePost missing title: got status %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestCreatePost_WithoutCategory(t *testing.T) {
	env := newTestEnv(t)
	editor := seedUser(t, env.DB, env.Users, models.RoleEditor)

	body := `{"title":"No Category","content":"Body.","status":"draft"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/posts", strings.NewReader(body))
	req = req.WithContext(ctxWithSession(req.Context(), testSession(editor)))

	rec := httptest.NewRecorder()
	env.Admin.CreatePost(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("CreatePost no category: got status %d, want %d: %s",
			rec.Code, http.StatusUnprocessableEntity, rec.Body.String())
	}
}

func TestUpdatePost_NotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPut, "/admin/posts/"+uuid.NewString(),
		strings.NewReader(`{"title":"x","content":"y"}`))
	req = withChiURLParam(req, "id", uuid.NewString())

	rec := httptest.NewRecorder()
	env.Admin.UpdatePost(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("UpdatePost missing: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

// --- Categories ---

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	cat := seedCategory(t, env.DB, env.Categories)

	body := `{"name":"Duplicate","name_bn":"অনুলিপি","slug":"` + cat.Slug + `"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.CreateCategory(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("CreateCategory duplicate slug: got status %d, want %d: %s",
			rec.Code, http.StatusConflict, rec.Body.String())
	}
}

func TestCreateCategory_GeneratesSlug(t *testing.T) {
	env := newTestEnv(t)

	name := "Test Handler Cat " + uuid.NewString()[:8]
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE name = $1", name) })

	body := `{"name":"` + name + `","name_bn":"পরীক্ষা"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.Admin.CreateCategory(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("CreateCategory: got status %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var cat models.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &cat); err != nil {
		t.Fatalf("CreateCategory: decode body: %v", err)
	}
	if cat.Slug == "" {
		t.Error("CreateCategory: slug was not generated from the name")
	}
}

// --- Comment moderation ---

func TestApproveComment_AsEditor(t *testing.T) {
	env := newTestEnv(t)
	editor := seedUser(t, env.DB, env.Users, models.RoleEditor)
	reader := seedUser(t, env.DB, env.Users, models.RoleReader)
	cat := seedCategory(t, env.DB, env.Categories)

	post, err := env.Posts.Create(t.Context(), &models.Post{
		Title:    "Comment target",
		Slug:     "test-comment-target-" + uuid.NewString()[:8],
		Content:  "body",
		Status:   models.PostStatusPublished,
		AuthorID: editor.ID,
	}, store.TaxonomyInput{CategoryIDs: []uuid.UUID{cat.ID}})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM posts WHERE id = $1", post.ID) })

	comment, err := env.Comments.Create(t.Context(), post.ID, reader.ID, nil, "looks right to me")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/comments/"+comment.ID.String()+"/approve", nil)
	req = withChiURLParamAndSession(req, "id", comment.ID.String(), testSession(editor))

	rec := httptest.NewRecorder()
	env.Admin.ApproveComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ApproveComment: got status %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var approved bool
	if err := env.DB.QueryRow("SELECT is_approved FROM comments WHERE id = $1", comment.ID).Scan(&approved); err != nil {
		t.Fatalf("read comment: %v", err)
	}
	if !approved {
		t.Error("ApproveComment: comment still pending after approval")
	}
}

func TestDeleteComment_AsReader(t *testing.T) {
	env := newTestEnv(t)
	reader := seedUser(t, env.DB, env.Users, models.RoleReader)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/admin/comments/"+id, nil)
	req = withChiURLParamAndSession(req, "id", id, testSession(reader))

	rec := httptest.NewRecorder()
	env.Admin.DeleteComment(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("DeleteComment as reader: got status %d, want %d", rec.Code, http.StatusForbidden)
	}
}
