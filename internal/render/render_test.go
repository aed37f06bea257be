package render_test

import (
	"strings"
	"testing"

	"consultq/internal/api"
	"consultq/internal/render"
)

func TestMessagesResolveEnglish(t *testing.T) {
	msgs, err := render.NewMessages("en")
	if err != nil {
		t.Fatalf("NewMessages: %v", err)
	}

	joined := msgs.Joined(3)
	if !strings.Contains(joined, "3") {
		t.Fatalf("expected position in %q", joined)
	}
	if msgs.AlreadyQueued() == "" || msgs.NotQueued() == "" || msgs.EmptyQueue() == "" {
		t.Fatal("expected non-empty catalog messages")
	}
	removed := msgs.Removed("alice")
	if !strings.Contains(removed, "alice") {
		t.Fatalf("expected requester id in %q", removed)
	}
}

func TestMessagesFallBackToEnglish(t *testing.T) {
	msgs, err := render.NewMessages("de")
	if err != nil {
		t.Fatalf("NewMessages: %v", err)
	}
	if !strings.Contains(msgs.Position(1), "1") {
		t.Fatal("expected fallback message to render")
	}
}

func listingEntries(n int) []api.Entry {
	entries := make([]api.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, api.Entry{
			Position:    i + 1,
			RequesterID: "requester-" + strings.Repeat("x", 10),
			DisplayName: "Some Person",
			Note:        "needs help with a thing",
			CreatedAt:   1700000000000 + int64(i),
		})
	}
	return entries
}

func TestFormatListingIncludesAllWhenRoomy(t *testing.T) {
	entries := listingEntries(3)

	block, truncated := render.FormatListing(entries, 2000)
	if truncated {
		t.Fatal("expected no truncation at the default limit")
	}
	if !strings.HasPrefix(block, "```\n") || !strings.HasSuffix(block, "```") {
		t.Fatalf("expected fenced block, got %q", block)
	}
	for _, entry := range entries {
		if !strings.Contains(block, entry.Note) {
			t.Fatalf("expected entry note in block: %q", block)
		}
	}
}

func TestFormatListingDropsWholeLines(t *testing.T) {
	entries := listingEntries(50)

	full, _ := render.FormatListing(entries[:1], 2000)
	oneLine := len(full)

	limit := oneLine + 10 // room for one entry, not two
	block, truncated := render.FormatListing(entries, limit)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if len(block) > limit {
		t.Fatalf("block length %d exceeds limit %d", len(block), limit)
	}
	if strings.Count(block, "\n") != 2 {
		t.Fatalf("expected exactly one entry line, got %q", block)
	}
}

func TestFormatListingNeverExceedsLimit(t *testing.T) {
	entries := listingEntries(20)
	for limit := 7; limit <= 400; limit += 7 {
		block, _ := render.FormatListing(entries, limit)
		if len(block) > limit {
			t.Fatalf("limit %d: block length %d", limit, len(block))
		}
	}
}

func TestFormatListingTinyLimitKeepsFences(t *testing.T) {
	block, truncated := render.FormatListing(listingEntries(1), 8)
	if !truncated {
		t.Fatal("expected truncation at a tiny limit")
	}
	if block != "```\n```" {
		t.Fatalf("expected bare fences, got %q", block)
	}
}
