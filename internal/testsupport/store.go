package testsupport

import (
	"context"
	"testing"

	"consultq/internal/config"
	"consultq/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustInsert adds an entry for tests using the provided store.
func MustInsert(t testing.TB, store *queue.Store, id, displayName, note string, createdAt int64) *queue.Entry {
	t.Helper()

	rid, err := queue.ParseRequesterID(id)
	if err != nil {
		t.Fatalf("ParseRequesterID(%q): %v", id, err)
	}
	entry, err := store.Insert(context.Background(), rid, displayName, note, createdAt)
	if err != nil {
		t.Fatalf("store.Insert: %v", err)
	}
	return entry
}
