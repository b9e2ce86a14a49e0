// Package store provides database access methods for all KhoborPress
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods. Simple reads and writes run on the pool directly; the two
// multi-row operations (taxonomy save, comment delete with replies) run
// inside explicit transactions and accept a context so cancellation maps
// to rollback.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the stores classify.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (duplicate slug, email, and so on).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key
// violation, such as deleting a category a post still references.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
