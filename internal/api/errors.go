package api

import "errors"

// Business-rule outcomes. These are expected results of user actions,
// returned for user-facing rendering and never logged as errors.
var (
	// ErrAlreadyQueued rejects a duplicate enqueue attempt.
	ErrAlreadyQueued = errors.New("requester already queued")

	// ErrNotQueued rejects withdraw/position for an absent requester.
	ErrNotQueued = errors.New("requester not in the queue")

	// ErrEntryNotFound rejects an admin removal of an absent entry.
	ErrEntryNotFound = errors.New("no entry for requester")
)

// IsBusinessError reports whether err is an expected business-rule
// outcome rather than a storage fault.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrAlreadyQueued) ||
		errors.Is(err, ErrNotQueued) ||
		errors.Is(err, ErrEntryNotFound)
}
