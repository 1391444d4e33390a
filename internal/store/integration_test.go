// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"os"
	"testing"

	"hostwise/internal/database"
	"hostwise/internal/models"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL, runs
// migrations, and truncates the content tables. Tests are skipped when
// no database is reachable so the suite still runs in plain CI.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		t.Skipf("database not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	_, err = db.Exec(`TRUNCATE posts, categories, partners, service_requests, documents CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestIntegrationPostLifecycle(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostStore(db)
	categories := NewCategoryStore(db)

	cat, err := categories.Create(&models.Category{
		Type: models.PostTypeInsights, Name: "Market Analysis", IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	created, err := posts.Create(&models.Post{
		Type:       models.PostTypeInsights,
		Title:      "Q1 outlook",
		Content:    "body",
		Slug:       "q1-outlook",
		Tags:       []string{"market", "korea"},
		Status:     models.PostStatusPublished,
		CategoryID: &cat.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	if created.PublishedAt == nil {
		t.Error("publishing must set published_at")
	}
	if created.CategoryName == nil || *created.CategoryName != "Market Analysis" {
		t.Errorf("expected the joined category name, got %v", created.CategoryName)
	}

	// The view counter increments atomically and returns the new value.
	for want := 1; want <= 3; want++ {
		got, err := posts.IncrementViews(created.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("IncrementViews = %d, want %d", got, want)
		}
	}

	// The category cannot be deleted while the post references it.
	if err := categories.Delete(cat.ID); err != ErrCategoryInUse {
		t.Errorf("expected ErrCategoryInUse, got %v", err)
	}

	if err := posts.Delete(created.ID); err != nil {
		t.Fatal(err)
	}
	if err := categories.Delete(cat.ID); err != nil {
		t.Errorf("delete after the post is gone should succeed, got %v", err)
	}
}

func TestIntegrationCategoryBoardInvariant(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostStore(db)
	categories := NewCategoryStore(db)

	eventsCat, err := categories.Create(&models.Category{
		Type: models.PostTypeEvents, Name: "Seminars", IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = posts.Create(&models.Post{
		Type:       models.PostTypeInsights,
		Title:      "wrong board",
		Content:    "body",
		Slug:       "wrong-board",
		Status:     models.PostStatusDraft,
		CategoryID: &eventsCat.ID,
	})
	if err != ErrCategoryBoardMismatch {
		t.Errorf("expected ErrCategoryBoardMismatch, got %v", err)
	}
}

func TestIntegrationServiceRequestWorkflow(t *testing.T) {
	db := setupTestDB(t)
	requests := NewServiceRequestStore(db)
	users := NewUserStore(db)

	admin, err := users.FindByEmail("admin@hostwise.local")
	if err != nil {
		t.Fatal(err)
	}
	if admin == nil {
		admin, err = users.Create("admin@hostwise.local", "integration-pass", "Admin", models.RoleAdmin)
		if err != nil {
			t.Fatal(err)
		}
	}

	created, err := requests.Create(&models.ServiceRequest{
		CompanyName:  "Harbor Hotel",
		Location:     "Incheon",
		Scale:        "80 rooms",
		ContactName:  "Lee Minseo",
		ContactPhone: "+82 10-9876-5432",
		ContactEmail: "minseo@example.com",
		Services:     []string{"operations"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Status != models.RequestStatusPending {
		t.Errorf("new requests must start pending, got %q", created.Status)
	}

	note := "called back"
	if err := requests.UpdateStatus(created.ID, models.RequestStatusContacted, &note, admin.ID); err != nil {
		t.Fatal(err)
	}

	updated, err := requests.FindByID(created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.RequestStatusContacted {
		t.Errorf("Status = %q, want contacted", updated.Status)
	}
	if updated.ProcessedAt == nil || updated.ProcessedBy == nil {
		t.Error("a status change must stamp processed_by and processed_at")
	}
}
