package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"consultq/internal/config"
)

// Store manages waiting-list persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the waiting-list database and applies
// the schema version guard.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk location backing the store.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

const entryColumns = "seq, requester_id, display_name, note, created_at"

// Insert adds a new entry and returns it with the assigned sequence
// number. The caller supplies created_at so the service layer controls
// the ordering clock.
func (s *Store) Insert(ctx context.Context, id RequesterID, displayName, note string, createdAt int64) (*Entry, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO wait_entries (requester_id, display_name, note, created_at) VALUES (?, ?, ?, ?)`,
		string(id),
		displayName,
		note,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &Entry{
		Seq:         seq,
		RequesterID: id,
		DisplayName: displayName,
		Note:        note,
		CreatedAt:   createdAt,
	}, nil
}

// Delete removes the entry for a requester. The boolean reports whether
// a row was actually deleted.
func (s *Store) Delete(ctx context.Context, id RequesterID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wait_entries WHERE requester_id = ?`, string(id))
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Exists reports whether a requester currently holds an entry.
func (s *Store) Exists(ctx context.Context, id RequesterID) (bool, error) {
	var count int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(requester_id) FROM wait_entries WHERE requester_id = ?`,
		string(id),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check entry exists: %w", err)
	}
	return count > 0, nil
}

// GetByRequester fetches a single entry, or nil when absent.
func (s *Store) GetByRequester(ctx context.Context, id RequesterID) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+entryColumns+` FROM wait_entries WHERE requester_id = ?`,
		string(id),
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// Count returns the total number of active entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM wait_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// Rank returns the 1-based position of the entry at (createdAt, seq):
// the number of entries at or ahead of it in queue order. Sequence
// numbers break timestamp ties so ranks are always distinct.
func (s *Store) Rank(ctx context.Context, createdAt, seq int64) (int, error) {
	var rank int
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM wait_entries
         WHERE created_at < ? OR (created_at = ? AND seq <= ?)`,
		createdAt,
		createdAt,
		seq,
	).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("rank entry: %w", err)
	}
	return rank, nil
}

// List returns all entries oldest first. An empty queue yields an empty
// slice, not an error.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM wait_entries ORDER BY created_at, seq`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		seq         int64
		requesterID string
		displayName sql.NullString
		note        sql.NullString
		createdAt   int64
	)

	if err := scanner.Scan(&seq, &requesterID, &displayName, &note, &createdAt); err != nil {
		return nil, err
	}

	return &Entry{
		Seq:         seq,
		RequesterID: RequesterID(requesterID),
		DisplayName: displayName.String,
		Note:        note.String,
		CreatedAt:   createdAt,
	}, nil
}
