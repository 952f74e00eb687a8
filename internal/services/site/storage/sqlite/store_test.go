package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/thinkinrocks/thinkin.rocks/internal/services/site/storage"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "site.db")
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	})
	return store, path
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("expected error")
	}
}

func TestOpenRunsMigrations(t *testing.T) {
	_, path := openTestStore(t)

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() {
		_ = sqlDB.Close()
	}()

	var name string
	if err := sqlDB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = 'applications'").Scan(&name); err != nil {
		t.Fatalf("expected applications table: %v", err)
	}
	var applied int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 1 {
		t.Fatalf("applied migrations = %d, want 1", applied)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	for i := 0; i < 2; i++ {
		store, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close #%d: %v", i+1, err)
		}
	}
}

func TestApplicationRoundTrip(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	want := storage.Application{
		ID:         "app-1",
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Interest:   "Building analytical engines together",
		Newsletter: true,
		CreatedAt:  created,
	}
	if err := store.CreateApplication(ctx, want); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetApplication(ctx, "app-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("application mismatch (-want +got):\n%s", diff)
	}
}

func TestGetApplicationNotFound(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.GetApplication(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestCreateApplicationRejectsDuplicateID(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	application := storage.Application{ID: "dup", FullName: "A B", Email: "a@b.c", Interest: "long enough interest"}
	if err := store.CreateApplication(ctx, application); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.CreateApplication(ctx, application); err == nil {
		t.Fatal("expected duplicate id error")
	}
	if err := store.CreateApplication(ctx, storage.Application{}); err == nil {
		t.Fatal("expected missing id error")
	}
}

func TestListApplicationsNewestFirst(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		err := store.CreateApplication(ctx, storage.Application{
			ID:        id,
			FullName:  "Member " + id,
			Email:     id + "@example.com",
			Interest:  "interested in everything",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	got, err := store.ListApplications(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, application := range got {
		ids = append(ids, application.ID)
	}
	if diff := cmp.Diff([]string{"c", "b"}, ids); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}
