// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"khoborpress/internal/database"
	"khoborpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "khoborpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "khoborpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser creates a throwaway user with the given role and registers its
// removal. Comments and posts owned by the user cascade-delete with it.
func testUser(t *testing.T, db *sql.DB, role models.Role) *models.User {
	t.Helper()
	s := NewUserStore(db)
	email := "test-" + uuid.NewString()[:8] + "@khoborpress.test"
	u, err := s.Create("Test "+string(role), email, "secret123", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// testCategory creates a throwaway category and registers its removal.
func testCategory(t *testing.T, db *sql.DB) *models.Category {
	t.Helper()
	s := NewCategoryStore(db)
	slug := "test-cat-" + uuid.NewString()[:8]
	c, err := s.Create(&models.Category{Name: "Test " + slug, NameBn: "পরীক্ষা", Slug: slug})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", c.ID) })
	return c
}

// testTag creates a throwaway tag and registers its removal.
func testTag(t *testing.T, db *sql.DB) *models.Tag {
	t.Helper()
	s := NewTagStore(db)
	slug := "test-tag-" + uuid.NewString()[:8]
	tag, err := s.Create(&models.Tag{Name: "Tag " + slug, Slug: slug})
	if err != nil {
		t.Fatalf("create test tag: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM tags WHERE id = $1", tag.ID) })
	return tag
}

// testPost creates a published throwaway post in the given category and
// registers its removal.
func testPost(t *testing.T, db *sql.DB, authorID, categoryID uuid.UUID) *models.Post {
	t.Helper()
	s := NewPostStore(db)
	slug := "test-post-" + uuid.NewString()[:8]
	p, err := s.Create(t.Context(), &models.Post{
		Title:    "Test " + slug,
		Slug:     slug,
		Content:  "body",
		Status:   models.PostStatusPublished,
		AuthorID: authorID,
	}, TaxonomyInput{CategoryIDs: []uuid.UUID{categoryID}})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM posts WHERE id = $1", p.ID) })
	return p
}
