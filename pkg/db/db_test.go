package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return database
}

func TestMigrateIsIdempotent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	if err := database.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	version, err := database.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestBridgeSaveAndActive(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	store := database.Bridges()

	if _, err := store.GetActive(ctx); !errors.Is(err, ErrBridgeNotFound) {
		t.Fatalf("GetActive on empty store: err = %v, want ErrBridgeNotFound", err)
	}

	b := &Bridge{Address: "192.168.1.10", Username: "abc123"}
	if err := store.Save(ctx, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	active, err := store.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if active.Address != "192.168.1.10" || active.Username != "abc123" {
		t.Errorf("active = %+v", active)
	}
}

func TestBridgeSaveUpsertsByAddress(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	store := database.Bridges()

	if err := store.Save(ctx, &Bridge{Address: "192.168.1.10", Username: "old"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, &Bridge{Address: "192.168.1.10", Username: "new"}); err != nil {
		t.Fatalf("Save (upsert): %v", err)
	}

	bridges, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(bridges) != 1 {
		t.Fatalf("len(bridges) = %d, want 1", len(bridges))
	}
	if bridges[0].Username != "new" {
		t.Errorf("username = %q, want %q", bridges[0].Username, "new")
	}
}

func TestBridgeSaveActivatesLatest(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	store := database.Bridges()

	if err := store.Save(ctx, &Bridge{Address: "192.168.1.10", Username: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, &Bridge{Address: "192.168.1.20", Username: "b"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	active, err := store.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if active.Address != "192.168.1.20" {
		t.Errorf("active address = %q, want %q", active.Address, "192.168.1.20")
	}

	if err := store.SetActive(ctx, "192.168.1.10"); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	active, err = store.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if active.Address != "192.168.1.10" {
		t.Errorf("active address = %q, want %q", active.Address, "192.168.1.10")
	}
}

func TestBridgeDelete(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	store := database.Bridges()

	if err := store.Delete(ctx, "192.168.1.10"); !errors.Is(err, ErrBridgeNotFound) {
		t.Fatalf("Delete missing: err = %v, want ErrBridgeNotFound", err)
	}

	if err := store.Save(ctx, &Bridge{Address: "192.168.1.10", Username: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "192.168.1.10"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByAddress(ctx, "192.168.1.10"); !errors.Is(err, ErrBridgeNotFound) {
		t.Errorf("GetByAddress after delete: err = %v, want ErrBridgeNotFound", err)
	}
}
