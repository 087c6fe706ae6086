package classstore_test

import (
	"fmt"
	"testing"

	classstore "github.com/fitnest/fitnest/internal/app/store/classes"
	"github.com/fitnest/fitnest/internal/app/system/paging"
	"github.com/fitnest/fitnest/internal/domain/models"
	"github.com/fitnest/fitnest/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Class{
		Title:       "Power Yoga",
		Description: "Strength-focused yoga",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.TitleCI == "" {
		t.Error("expected TitleCI to be set")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_List_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, title := range []string{"Power Yoga", "Morning Yoga", "HIIT Blast"} {
		if _, err := store.Create(ctx, models.Class{Title: title}); err != nil {
			t.Fatalf("Create %q failed: %v", title, err)
		}
	}

	got, total, err := store.List(ctx, "YOGA", paging.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 {
		t.Errorf("total: got %d, want 2", total)
	}
	if len(got) != 2 {
		t.Errorf("len: got %d, want 2", len(got))
	}
	for _, c := range got {
		if c.Title == "HIIT Blast" {
			t.Error("search should not match HIIT Blast")
		}
	}
}

func TestStore_List_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 10; i++ {
		if _, err := store.Create(ctx, models.Class{Title: fmt.Sprintf("Class %02d", i)}); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	page2, total, err := store.List(ctx, "", paging.Page{Page: 2, Limit: 6})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	// total reflects the full filtered set, not the page
	if total != 10 {
		t.Errorf("total: got %d, want 10", total)
	}
	// 10 items, limit 6: page 2 holds the remaining 4
	if len(page2) != 4 {
		t.Errorf("page 2 len: got %d, want 4", len(page2))
	}

	page1, _, err := store.List(ctx, "", paging.Page{Page: 1, Limit: 6})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page1) != 6 {
		t.Errorf("page 1 len: got %d, want 6", len(page1))
	}
	// no overlap between pages
	seen := map[string]bool{}
	for _, c := range page1 {
		seen[c.ID.Hex()] = true
	}
	for _, c := range page2 {
		if seen[c.ID.Hex()] {
			t.Errorf("class %s appears on both pages", c.Title)
		}
	}
}

func TestStore_List_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, total, err := store.List(ctx, "nothing", paging.Page{Page: 1, Limit: 6})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 0 || len(got) != 0 {
		t.Errorf("expected empty result, got %d items total %d", len(got), total)
	}
}
