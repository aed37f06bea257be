package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRequesterID indicates a requester identifier that failed
// boundary validation. Callers should treat it as bad input, not a
// storage fault.
var ErrInvalidRequesterID = errors.New("invalid requester id")

// RequesterID is the opaque stable identity of a queue participant.
// Construct one with ParseRequesterID; raw conversions skip validation
// and are reserved for values already persisted in the store.
type RequesterID string

const maxRequesterIDLen = 64

// ParseRequesterID validates raw input once at the boundary.
// Valid identifiers are non-empty after trimming, at most 64 bytes,
// and limited to letters, digits, and the separators ._:@-.
func ParseRequesterID(raw string) (RequesterID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidRequesterID)
	}
	if len(trimmed) > maxRequesterIDLen {
		return "", fmt.Errorf("%w: longer than %d bytes", ErrInvalidRequesterID, maxRequesterIDLen)
	}
	for _, r := range trimmed {
		if !isRequesterIDRune(r) {
			return "", fmt.Errorf("%w: character %q not allowed", ErrInvalidRequesterID, r)
		}
	}
	return RequesterID(trimmed), nil
}

func isRequesterIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == ':' || r == '@' || r == '-':
		return true
	}
	return false
}

func (id RequesterID) String() string { return string(id) }

// Entry is one row of the waiting list. Rows are immutable after
// insert; removal and re-enqueue is the only way to change position.
type Entry struct {
	Seq         int64
	RequesterID RequesterID
	DisplayName string
	Note        string
	CreatedAt   int64 // milliseconds since epoch
}

// CreatedTime converts the stored millisecond timestamp for display.
func (e Entry) CreatedTime() time.Time {
	return time.UnixMilli(e.CreatedAt).UTC()
}
