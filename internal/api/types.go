package api

import (
	"time"

	"consultq/internal/queue"
)

// Entry is the wire-friendly view of a waiting-list entry.
type Entry struct {
	Position    int    `json:"position"`
	RequesterID string `json:"requester_id"`
	DisplayName string `json:"display_name"`
	Note        string `json:"note,omitempty"`
	CreatedAt   int64  `json:"created_at"`
}

// CreatedTime converts the millisecond timestamp for display.
func (e Entry) CreatedTime() time.Time {
	return time.UnixMilli(e.CreatedAt).UTC()
}

// FromEntry converts a store row into its DTO. Position is 1-based and
// supplied by the caller, which knows the row's place in the scan.
func FromEntry(entry *queue.Entry, position int) Entry {
	if entry == nil {
		return Entry{}
	}
	return Entry{
		Position:    position,
		RequesterID: entry.RequesterID.String(),
		DisplayName: entry.DisplayName,
		Note:        entry.Note,
		CreatedAt:   entry.CreatedAt,
	}
}

// FromEntries converts an ordered scan into DTOs with positions
// assigned from the scan order.
func FromEntries(entries []*queue.Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for i, entry := range entries {
		out = append(out, FromEntry(entry, i+1))
	}
	return out
}
