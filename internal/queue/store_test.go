package queue_test

import (
	"context"
	"fmt"
	"testing"

	"consultq/internal/queue"
	"consultq/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry := testsupport.MustInsert(t, store, "alice", "Alice", "first question", 1000)
	if entry.Seq == 0 {
		t.Fatal("expected sequence number to be assigned")
	}

	fetched, err := store.GetByRequester(ctx, entry.RequesterID)
	if err != nil {
		t.Fatalf("GetByRequester: %v", err)
	}
	if fetched == nil || fetched.DisplayName != "Alice" || fetched.Note != "first question" {
		t.Fatalf("unexpected fetched entry: %#v", fetched)
	}
	if fetched.CreatedAt != 1000 {
		t.Fatalf("expected created_at 1000, got %d", fetched.CreatedAt)
	}
}

func TestInsertRejectsDuplicateRequester(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.MustInsert(t, store, "alice", "Alice", "", 1000)

	id, err := queue.ParseRequesterID("alice")
	if err != nil {
		t.Fatalf("ParseRequesterID: %v", err)
	}
	if _, err := store.Insert(context.Background(), id, "Alice Again", "", 2000); err == nil {
		t.Fatal("expected unique constraint violation for duplicate requester")
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one entry after rejected duplicate, got %d", count)
	}
}

func TestExistsAndDelete(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	entry := testsupport.MustInsert(t, store, "bob", "Bob", "", 1000)

	exists, err := store.Exists(ctx, entry.RequesterID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatal("expected entry to exist")
	}

	deleted, err := store.Delete(ctx, entry.RequesterID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report a removed row")
	}

	deleted, err = store.Delete(ctx, entry.RequesterID)
	if err != nil {
		t.Fatalf("Delete second call: %v", err)
	}
	if deleted {
		t.Fatal("expected second delete to report no removed row")
	}

	exists, err = store.Exists(ctx, entry.RequesterID)
	if err != nil {
		t.Fatalf("Exists after delete: %v", err)
	}
	if exists {
		t.Fatal("expected entry to be gone")
	}
}

func TestListOrdersByCreatedThenSeq(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	testsupport.MustInsert(t, store, "late", "Late", "", 3000)
	testsupport.MustInsert(t, store, "early", "Early", "", 1000)
	testsupport.MustInsert(t, store, "middle", "Middle", "", 2000)

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	got := []string{entries[0].RequesterID.String(), entries[1].RequesterID.String(), entries[2].RequesterID.String()}
	want := []string{"early", "middle", "late"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestListEmptyQueue(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty listing, got %d entries", len(entries))
	}
}

func TestRankBreaksTimestampTies(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	// Same clock tick for all three; insertion order must decide.
	first := testsupport.MustInsert(t, store, "r1", "One", "", 5000)
	second := testsupport.MustInsert(t, store, "r2", "Two", "", 5000)
	third := testsupport.MustInsert(t, store, "r3", "Three", "", 5000)

	for i, entry := range []*queue.Entry{first, second, third} {
		rank, err := store.Rank(ctx, entry.CreatedAt, entry.Seq)
		if err != nil {
			t.Fatalf("Rank: %v", err)
		}
		if rank != i+1 {
			t.Fatalf("expected rank %d for %s, got %d", i+1, entry.RequesterID, rank)
		}
	}
}

func TestRankAfterRemoval(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	testsupport.MustInsert(t, store, "a", "A", "", 1000)
	b := testsupport.MustInsert(t, store, "b", "B", "", 2000)
	c := testsupport.MustInsert(t, store, "c", "C", "", 3000)

	if _, err := store.Delete(ctx, b.RequesterID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rank, err := store.Rank(ctx, c.CreatedAt, c.Seq)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if rank != 2 {
		t.Fatalf("expected c to move up to rank 2, got %d", rank)
	}
}

func TestCountTracksMutations(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		testsupport.MustInsert(t, store, fmt.Sprintf("user-%d", i), "User", "", int64(1000+i))
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 entries, got %d", count)
	}

	id, _ := queue.ParseRequesterID("user-2")
	if _, err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	count, err = store.Count(ctx)
	if err != nil {
		t.Fatalf("Count after delete: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 entries, got %d", count)
	}
}

func TestParseRequesterID(t *testing.T) {
	valid := []string{"alice", "123456789", "user.name_01", "a:b@c-d", " padded "}
	for _, raw := range valid {
		if _, err := queue.ParseRequesterID(raw); err != nil {
			t.Fatalf("ParseRequesterID(%q): unexpected error %v", raw, err)
		}
	}

	invalid := []string{"", "   ", "has space", "semi;colon", "new\nline", string(make([]byte, 80))}
	for _, raw := range invalid {
		if _, err := queue.ParseRequesterID(raw); err == nil {
			t.Fatalf("ParseRequesterID(%q): expected error", raw)
		}
	}
}
