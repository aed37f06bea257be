package queueaccess_test

import (
	"context"
	"errors"
	"testing"

	"consultq/internal/ipc"
	"consultq/internal/queue"
	"consultq/internal/queueaccess"
	"consultq/internal/testsupport"
)

func newStoreAccess(t *testing.T, opts ...testsupport.ConfigOption) queueaccess.Access {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.MustOpenStore(t, cfg)
	access, err := queueaccess.NewStoreAccess(store, cfg)
	if err != nil {
		t.Fatalf("NewStoreAccess: %v", err)
	}
	return access
}

func TestStoreAccessRoundTrip(t *testing.T) {
	access := newStoreAccess(t)
	ctx := context.Background()

	join, err := access.Join(ctx, "alice", "Alice", "thesis draft")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if !join.Ok || join.Position != 1 {
		t.Fatalf("unexpected join response: %+v", join)
	}

	pos, err := access.Position(ctx, "alice")
	if err != nil {
		t.Fatalf("Position: %v", err)
	}
	if !pos.Ok || pos.Position != 1 {
		t.Fatalf("unexpected position response: %+v", pos)
	}

	list, err := access.List(ctx, "anyone")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list.Entries) != 1 || list.Entries[0].Note != "thesis draft" {
		t.Fatalf("unexpected list response: %+v", list)
	}

	leave, err := access.Leave(ctx, "alice")
	if err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if !leave.Ok {
		t.Fatalf("unexpected leave response: %+v", leave)
	}

	gone, err := access.Position(ctx, "alice")
	if err != nil {
		t.Fatalf("Position after leave: %v", err)
	}
	if gone.Ok || gone.Code != ipc.CodeNotQueued {
		t.Fatalf("expected not_queued, got %+v", gone)
	}
}

func TestStoreAccessRemove(t *testing.T) {
	access := newStoreAccess(t)
	ctx := context.Background()

	if _, err := access.Join(ctx, "bob", "Bob", ""); err != nil {
		t.Fatalf("Join: %v", err)
	}

	removed, err := access.Remove(ctx, "local", "bob")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed.Ok || removed.Code != ipc.CodeOK {
		t.Fatalf("unexpected remove response: %+v", removed)
	}

	missing, err := access.Remove(ctx, "local", "bob")
	if err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if missing.Ok || missing.Code != ipc.CodeNotFound {
		t.Fatalf("expected not_found, got %+v", missing)
	}
}

func TestStoreAccessRejectsMalformedIDs(t *testing.T) {
	access := newStoreAccess(t)
	ctx := context.Background()

	join, err := access.Join(ctx, "bad id!", "Nobody", "")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if join.Ok || join.Code != ipc.CodeInvalidRequester {
		t.Fatalf("expected invalid_requester, got %+v", join)
	}
}

func TestOpenWithFallbackUsesStoreWhenDialFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	dial := func() (*ipc.Client, error) {
		return nil, errors.New("socket unavailable")
	}
	openStore := func() (*queue.Store, queueaccess.Access, error) {
		store, err := queue.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		access, err := queueaccess.NewStoreAccess(store, cfg)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, access, nil
	}

	session, err := queueaccess.OpenWithFallback(dial, openStore)
	if err != nil {
		t.Fatalf("OpenWithFallback: %v", err)
	}
	defer session.Close()

	resp, err := session.Access.Join(context.Background(), "carol", "Carol", "")
	if err != nil {
		t.Fatalf("Join via fallback: %v", err)
	}
	if !resp.Ok || resp.Position != 1 {
		t.Fatalf("unexpected join response: %+v", resp)
	}
}
