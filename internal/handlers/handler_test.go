// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"khoborpress/internal/cache"
	"khoborpress/internal/database"
	"khoborpress/internal/middleware"
	"khoborpress/internal/models"
	"khoborpress/internal/session"
	"khoborpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "khoborpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "khoborpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*", "post_views"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB          *sql.DB
	Valkey      *redis.Client
	Sessions    *session.Store
	Posts       *store.PostStore
	Categories  *store.CategoryStore
	Tags        *store.TagStore
	Comments    *store.CommentStore
	Users       *store.UserStore
	Newsletter  *store.NewsletterStore
	PageCache   *cache.PageCache
	ViewCounter *cache.ViewCounter
	Admin       *Admin
	Auth        *Auth
	Public      *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Object storage is left unconfigured; media endpoints
// answer 503 in tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	posts := store.NewPostStore(db)
	categories := store.NewCategoryStore(db)
	tags := store.NewTagStore(db)
	comments := store.NewCommentStore(db)
	users := store.NewUserStore(db)
	videos := store.NewVideoStore(db)
	opinions := store.NewOpinionStore(db)
	ads := store.NewAdStore(db)
	newsletter := store.NewNewsletterStore(db)
	settings := store.NewSiteSettingStore(db)
	media := store.NewMediaStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)
	viewCounter := cache.NewViewCounter(vk)

	admin := NewAdmin(posts, categories, tags, comments, users,
		videos, opinions, ads, newsletter, settings, media, nil, pageCache)
	auth := NewAuth(sessions, users)
	public := NewPublic(posts, categories, tags, comments,
		videos, opinions, ads, newsletter, settings, pageCache, viewCounter)

	return &testEnv{
		DB:          db,
		Valkey:      vk,
		Sessions:    sessions,
		Posts:       posts,
		Categories:  categories,
		Tags:        tags,
		Comments:    comments,
		Users:       users,
		Newsletter:  newsletter,
		PageCache:   pageCache,
		ViewCounter: viewCounter,
		Admin:       admin,
		Auth:        auth,
		Public:      public,
	}
}

// seedUser creates a throwaway account with the given role and registers
// its removal.
func seedUser(t *testing.T, db *sql.DB, users *store.UserStore, role models.Role) *models.User {
	t.Helper()
	email := "test-" + uuid.NewString()[:8] + "@khoborpress.test"
	u, err := users.Create("Test "+string(role), email, "secret123", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// seedCategory creates a throwaway category and registers its removal.
func seedCategory(t *testing.T, db *sql.DB, categories *store.CategoryStore) *models.Category {
	t.Helper()
	s := "test-cat-" + uuid.NewString()[:8]
	c, err := categories.Create(&models.Category{Name: "Test " + s, NameBn: "পরীক্ষা", Slug: s})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", c.ID) })
	return c
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for a user.
func testSession(u *models.User) *session.Data {
	return &session.Data{
		UserID:    u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		TwoFADone: true,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both a chi URL param and a session.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}
