package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/khairulanwar/merci/internal/common"
	"github.com/khairulanwar/merci/internal/service"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func TestInsertAndListEntries(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	inserted, err := store.InsertEntry(ctx, "2024-01-15", 120.50, "lunch shift")
	if err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}
	if inserted.ID == "" {
		t.Error("inserted entry has no ID")
	}
	if inserted.CreatedAt.IsZero() || inserted.UpdatedAt.IsZero() {
		t.Error("inserted entry has zero timestamps")
	}

	if _, err := store.InsertEntry(ctx, "2024-01-16", 75, ""); err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}

	entries, err := store.ListEntries(ctx, 0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Newest date first
	if entries[0].Date != "2024-01-16" || entries[1].Date != "2024-01-15" {
		t.Errorf("entries not ordered newest first: %s, %s", entries[0].Date, entries[1].Date)
	}

	// Empty notes round-trip as empty
	if entries[0].Notes != "" {
		t.Errorf("expected empty notes, got %q", entries[0].Notes)
	}
	if entries[1].Notes != "lunch shift" {
		t.Errorf("got notes %q, want %q", entries[1].Notes, "lunch shift")
	}
}

func TestListEntriesRespectsLimit(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	for _, date := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if _, err := store.InsertEntry(ctx, date, 10, ""); err != nil {
			t.Fatalf("InsertEntry failed: %v", err)
		}
	}

	entries, err := store.ListEntries(ctx, 2)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Zero and negative limits both mean unlimited.
	for _, limit := range []int{0, -1} {
		entries, err = store.ListEntries(ctx, limit)
		if err != nil {
			t.Fatalf("ListEntries(%d) failed: %v", limit, err)
		}
		if len(entries) != 3 {
			t.Fatalf("ListEntries(%d) got %d entries, want 3", limit, len(entries))
		}
	}
}

func TestGetEntryByID(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	inserted, err := store.InsertEntry(ctx, "2024-02-01", 300, "catering")
	if err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}

	got, err := store.GetEntryByID(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("GetEntryByID failed: %v", err)
	}
	if got.Date != "2024-02-01" || got.Amount != 300 || got.Notes != "catering" {
		t.Errorf("unexpected entry: %+v", got)
	}

	if _, err := store.GetEntryByID(ctx, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateEntry(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	inserted, err := store.InsertEntry(ctx, "2024-02-01", 300, "catering")
	if err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}

	newAmount := 350.0
	updated, err := store.UpdateEntry(ctx, inserted.ID, service.EntryUpdate{Amount: &newAmount})
	if err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}
	if updated.Amount != 350 {
		t.Errorf("got amount %.2f, want 350", updated.Amount)
	}
	// Untouched fields survive
	if updated.Date != "2024-02-01" || updated.Notes != "catering" {
		t.Errorf("partial update clobbered other fields: %+v", updated)
	}

	if _, err := store.UpdateEntry(ctx, "missing", service.EntryUpdate{Amount: &newAmount}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	inserted, err := store.InsertEntry(ctx, "2024-02-01", 300, "")
	if err != nil {
		t.Fatalf("InsertEntry failed: %v", err)
	}

	if err := store.DeleteEntry(ctx, inserted.ID); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}

	if err := store.DeleteEntry(ctx, inserted.ID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	entries, err := store.ListEntries(ctx, 0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries after delete, want 0", len(entries))
	}
}
