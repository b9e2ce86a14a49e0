package store

import (
	"testing"
	"time"

	"khoborpress/internal/models"
)

func TestAdStoreListRunning(t *testing.T) {
	db := testDB(t)
	s := NewAdStore(db)

	yesterday := time.Now().Add(-24 * time.Hour)
	tomorrow := time.Now().Add(24 * time.Hour)

	running, err := s.Create(&models.Ad{
		Name: "test-running", Placement: models.AdPlacementSidebar,
		ImageURL: "https://cdn.example.com/a.png", TargetURL: "https://example.com",
		StartsAt: &yesterday, EndsAt: &tomorrow, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create running: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM ads WHERE id = $1", running.ID) })

	future, err := s.Create(&models.Ad{
		Name: "test-future", Placement: models.AdPlacementSidebar,
		ImageURL: "https://cdn.example.com/b.png", TargetURL: "https://example.com",
		StartsAt: &tomorrow, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create future: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM ads WHERE id = $1", future.ID) })

	ads, err := s.ListRunning(models.AdPlacementSidebar)
	if err != nil {
		t.Fatalf("ListRunning: %v", err)
	}

	var sawRunning, sawFuture bool
	for _, a := range ads {
		if a.ID == running.ID {
			sawRunning = true
		}
		if a.ID == future.ID {
			sawFuture = true
		}
	}
	if !sawRunning {
		t.Error("expected active ad inside its window")
	}
	if sawFuture {
		t.Error("did not expect ad before its start date")
	}
}

func TestAdStoreDeactivateExpired(t *testing.T) {
	db := testDB(t)
	s := NewAdStore(db)

	past := time.Now().Add(-48 * time.Hour)
	expired, err := s.Create(&models.Ad{
		Name: "test-expired", Placement: models.AdPlacementFooter,
		ImageURL: "https://cdn.example.com/c.png", TargetURL: "https://example.com",
		EndsAt: &past, IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create expired: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM ads WHERE id = $1", expired.ID) })

	n, err := s.DeactivateExpired()
	if err != nil {
		t.Fatalf("DeactivateExpired: %v", err)
	}
	if n < 1 {
		t.Errorf("expected at least 1 deactivation, got %d", n)
	}

	found, _ := s.FindByID(expired.ID)
	if found.IsActive {
		t.Error("expected expired ad deactivated")
	}
}
