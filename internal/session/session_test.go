package session

import (
	"testing"

	"github.com/google/uuid"

	"khoborpress/internal/models"
)

func TestGenerateID(t *testing.T) {
	a, err := generateID()
	if err != nil {
		t.Fatalf("generateID: %v", err)
	}
	if len(a) != idLength*2 {
		t.Errorf("id length: got %d, want %d", len(a), idLength*2)
	}

	b, _ := generateID()
	if a == b {
		t.Error("two generated ids must differ")
	}
}

func TestDataViewer(t *testing.T) {
	t.Run("nil data is guest", func(t *testing.T) {
		var d *Data
		if !d.Viewer().IsGuest() {
			t.Error("nil session must resolve to a guest viewer")
		}
	})

	t.Run("editor session is moderator", func(t *testing.T) {
		d := &Data{UserID: uuid.New(), Role: models.RoleEditor}
		v := d.Viewer()
		if v.IsGuest() {
			t.Error("session viewer reported as guest")
		}
		if !v.IsModerator() {
			t.Error("editor session must be a moderator viewer")
		}
		if v.UserID != d.UserID {
			t.Errorf("viewer user id: got %s, want %s", v.UserID, d.UserID)
		}
	})

	t.Run("reader session is not moderator", func(t *testing.T) {
		d := &Data{UserID: uuid.New(), Role: models.RoleReader}
		if d.Viewer().IsModerator() {
			t.Error("reader session must not be a moderator viewer")
		}
	})
}
