package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"consultq/internal/logging"
	"consultq/internal/queue"
)

// Service executes the five waiting-list operations. A single mutex
// serializes every operation against the one store handle: no two
// store-touching operations interleave, which rules out the
// check-then-insert and delete-vs-rank races. The lock covers only the
// store interaction, never any caller-side I/O.
type Service struct {
	mu     sync.Mutex
	store  *queue.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs the waiting-list core around an open store.
func NewService(store *queue.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logging.NewComponentLogger(logger, "waitlist"),
		now:    time.Now,
	}
}

// Enqueue inserts a new entry for the requester and returns its
// 1-based position. Fails with ErrAlreadyQueued when the requester
// already holds an entry.
func (s *Service) Enqueue(ctx context.Context, id queue.RequesterID, displayName, note string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("enqueue %s: %w", id, err)
	}
	if exists {
		return 0, ErrAlreadyQueued
	}

	createdAt := s.now().UnixMilli()
	if _, err := s.store.Insert(ctx, id, displayName, note, createdAt); err != nil {
		return 0, fmt.Errorf("enqueue %s: %w", id, err)
	}

	// The new entry is always last in (created_at, seq) order, so its
	// position equals the row count after insertion.
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("enqueue %s: %w", id, err)
	}

	s.logger.Debug("requester enqueued",
		logging.String("requester_id", id.String()),
		logging.Int("position", count))
	return count, nil
}

// Withdraw removes the requester's own entry. Fails with ErrNotQueued
// when absent; repeated calls after success keep reporting ErrNotQueued.
func (s *Service) Withdraw(ctx context.Context, id queue.RequesterID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("withdraw %s: %w", id, err)
	}
	if !deleted {
		return ErrNotQueued
	}

	s.logger.Debug("requester withdrew", logging.String("requester_id", id.String()))
	return nil
}

// PositionOf returns the requester's 1-based rank: entries strictly
// ahead plus the entry itself, with sequence numbers breaking
// timestamp ties.
func (s *Service) PositionOf(ctx context.Context, id queue.RequesterID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.store.GetByRequester(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("position of %s: %w", id, err)
	}
	if entry == nil {
		return 0, ErrNotQueued
	}

	rank, err := s.store.Rank(ctx, entry.CreatedAt, entry.Seq)
	if err != nil {
		return 0, fmt.Errorf("position of %s: %w", id, err)
	}
	return rank, nil
}

// ListAll returns every entry oldest first. An empty queue yields an
// empty slice, not an error.
func (s *Service) ListAll(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return FromEntries(entries), nil
}

// AdminRemove deletes an entry by key regardless of ownership. The
// caller is responsible for restricting it to the operator. Fails with
// ErrEntryNotFound when no entry exists.
func (s *Service) AdminRemove(ctx context.Context, id queue.RequesterID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("admin remove %s: %w", id, err)
	}
	if !deleted {
		return ErrEntryNotFound
	}

	s.logger.Debug("entry removed by operator", logging.String("requester_id", id.String()))
	return nil
}

// Count returns the number of active entries, for status reporting.
func (s *Service) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Count(ctx)
}
