package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"khoborpress/internal/errs"
	"khoborpress/internal/models"
)

func TestUserStoreCreateAndAuth(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-auth-" + uuid.NewString()[:8] + "@khoborpress.test"
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE email = $1", email) })

	u, err := s.Create("Rahim Uddin", email, "s3cret-pass", models.RoleReader)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Role != models.RoleReader {
		t.Errorf("role: got %q", u.Role)
	}

	if !s.CheckPassword(u, "s3cret-pass") {
		t.Error("expected password to verify")
	}
	if s.CheckPassword(u, "wrong") {
		t.Error("expected wrong password to fail")
	}

	// Duplicate email is a conflict.
	_, err = s.Create("Other", email, "x", models.RoleReader)
	if !errors.Is(err, errs.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUserStoreInvalidRole(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	_, err := s.Create("Bad", "test-badrole@khoborpress.test", "x", models.Role("superadmin"))
	if !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown role, got %v", err)
	}

	u := testUser(t, db, models.RoleReader)
	if err := s.SetRole(u.ID, models.Role("owner")); !errors.Is(err, errs.ErrInvalid) {
		t.Errorf("expected ErrInvalid from SetRole, got %v", err)
	}
}

func TestUserStoreSuspend(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	u := testUser(t, db, models.RoleReader)

	if err := s.SetSuspended(u.ID, true); err != nil {
		t.Fatalf("SetSuspended: %v", err)
	}
	found, _ := s.FindByID(u.ID)
	if !found.IsSuspended {
		t.Error("expected suspended")
	}
}

func TestUserStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	u := testUser(t, db, models.RoleEditor)

	if err := s.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(u.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}
	found, _ := s.FindByID(u.ID)
	if !found.TOTPEnabled {
		t.Error("expected totp enabled")
	}

	if err := s.ResetTOTP(u.ID); err != nil {
		t.Fatalf("ResetTOTP: %v", err)
	}
	found, _ = s.FindByID(u.ID)
	if found.TOTPEnabled || found.TOTPSecret != nil {
		t.Error("expected totp cleared")
	}
}
