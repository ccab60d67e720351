package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteStorePersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	store, err := NewStore(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	ctx := context.Background()
	payloads := [][]byte{[]byte(`{"id":"neon_tetra"}`), []byte(`{"id":"betta"}`)}
	if err := store.ReplacePayloads(ctx, payloads); err != nil {
		t.Fatalf("replace: %v", err)
	}
	_ = store.Close()

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })
	got, err := reloaded.Payloads(ctx)
	if err != nil {
		t.Fatalf("payloads: %v", err)
	}
	if len(got) != 2 || string(got[0]) != `{"id":"neon_tetra"}` || string(got[1]) != `{"id":"betta"}` {
		t.Fatalf("unexpected payloads %q", got)
	}
	if reloaded.Path() != path {
		t.Fatalf("unexpected path %s", reloaded.Path())
	}
}

func TestSQLiteStoreReplaceOverwrites(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	ctx := context.Background()
	if err := store.ReplacePayloads(ctx, [][]byte{[]byte(`{"id":"a"}`), []byte(`{"id":"b"}`)}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.ReplacePayloads(ctx, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := store.Payloads(ctx)
	if err != nil {
		t.Fatalf("payloads: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty table, got %q", got)
	}
	var name string
	if err := store.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", "catalog_records").Scan(&name); err != nil {
		t.Fatalf("lookup table: %v", err)
	}
}
