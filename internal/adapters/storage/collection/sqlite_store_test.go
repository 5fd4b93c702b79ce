package collection

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"eventdesk/internal/adapters/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestSaveAndGetByID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := Record{"id": "u1", "email": "ana@example.com", "role": "visitor"}
	if err := store.Save(ctx, "users", rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.GetByID(ctx, "users", "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got["email"] != "ana@example.com" || got["role"] != "visitor" {
		t.Errorf("record = %v", got)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetByID(context.Background(), "users", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestSaveRequiresID(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(context.Background(), "users", Record{"email": "x@example.com"}); err == nil {
		t.Fatal("Save() without id succeeded")
	}
}

func TestSaveUpsertKeepsPosition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, rec := range []Record{
		{"id": "e1", "title": "first"},
		{"id": "e2", "title": "second"},
	} {
		if err := store.Save(ctx, "events", rec); err != nil {
			t.Fatal(err)
		}
	}

	// Updating the first record must not move it to the end.
	if err := store.Save(ctx, "events", Record{"id": "e1", "title": "first, renamed"}); err != nil {
		t.Fatal(err)
	}

	records, err := store.List(ctx, "events", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].ID() != "e1" || records[0]["title"] != "first, renamed" {
		t.Errorf("first record = %v", records[0])
	}
	if records[1].ID() != "e2" {
		t.Errorf("second record = %v", records[1])
	}
}

func TestListInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids := []string{"c", "a", "b"}
	for _, id := range ids {
		if err := store.Save(ctx, "events", Record{"id": id}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.List(ctx, "events", nil)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for i, id := range ids {
		if records[i].ID() != id {
			t.Errorf("records[%d] = %q, want %q", i, records[i].ID(), id)
		}
	}
}

func TestListFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []Record{
		{"id": "u1", "email": "ana@example.com", "role": "visitor", "active": true},
		{"id": "u2", "email": "bob@example.com", "role": "visitor", "active": false},
		{"id": "u3", "email": "admin@events.com", "role": "administrator", "logins": float64(3)},
	}
	for _, rec := range seed {
		if err := store.Save(ctx, "users", rec); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		filters map[string]string
		wantIDs []string
	}{
		{"no filters", nil, []string{"u1", "u2", "u3"}},
		{"by email", map[string]string{"email": "ana@example.com"}, []string{"u1"}},
		{"by role", map[string]string{"role": "visitor"}, []string{"u1", "u2"}},
		{"two fields", map[string]string{"role": "visitor", "email": "bob@example.com"}, []string{"u2"}},
		{"numeric value", map[string]string{"logins": "3"}, []string{"u3"}},
		{"boolean value", map[string]string{"active": "true"}, []string{"u1"}},
		{"absent field", map[string]string{"nickname": "x"}, nil},
		{"no match", map[string]string{"email": "ghost@example.com"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := store.List(ctx, "users", tt.filters)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(records) != len(tt.wantIDs) {
				t.Fatalf("records = %d, want %d", len(records), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if records[i].ID() != id {
					t.Errorf("records[%d] = %q, want %q", i, records[i].ID(), id)
				}
			}
		})
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "users", Record{"id": "shared"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "events", Record{"id": "shared"}); err != nil {
		t.Fatal(err)
	}

	users, err := store.List(ctx, "users", nil)
	if err != nil || len(users) != 1 {
		t.Fatalf("users = %v, err = %v", users, err)
	}
	if deleted, err := store.Delete(ctx, "users", "shared"); err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v", deleted, err)
	}
	if _, err := store.GetByID(ctx, "events", "shared"); err != nil {
		t.Errorf("event record affected by user delete: %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "events", Record{"id": "e1"}); err != nil {
		t.Fatal(err)
	}
	deleted, err := store.Delete(ctx, "events", "e1")
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v", deleted, err)
	}
	deleted, err = store.Delete(ctx, "events", "e1")
	if err != nil || deleted {
		t.Fatalf("second Delete() = %v, %v", deleted, err)
	}
}
