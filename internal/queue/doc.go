// Package queue implements the persistent waiting-list entry store
// backed by SQLite. It owns the table schema and the row-level
// operations (insert, delete, existence, counts, ordered scans); all
// business invariants beyond primary-key uniqueness are enforced by
// the service layer in internal/api.
package queue
