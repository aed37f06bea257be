package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"consultq/internal/api"
	"consultq/internal/config"
	"consultq/internal/logging"
	"consultq/internal/notifications"
	"consultq/internal/queue"
)

// ErrNotAuthorized rejects an operator-only operation requested by a
// non-operator.
var ErrNotAuthorized = errors.New("operator authorization required")

// Daemon coordinates the waiting-list service and enforces
// single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	service  *api.Service
	notifier notifications.Service

	sessionID string
	lockPath  string
	lock      *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	SessionID    string
	QueueLength  int
	QueueDBPath  string
	LockFilePath string
	OperatorSet  bool
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, service *api.Service, notifier notifications.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || service == nil || logger == nil {
		return nil, errors.New("daemon requires config, service, and logger")
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		service:   service,
		notifier:  notifier,
		sessionID: uuid.NewString(),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and marks the daemon running.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another consultqd instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("session_id", d.sessionID),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop marks the daemon stopped and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("daemon stopped", logging.String("session_id", d.sessionID))
}

// Close stops the daemon. The store is owned and closed by the caller
// that opened it.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// SessionID returns the identifier assigned to this daemon process.
func (d *Daemon) SessionID() string {
	return d.sessionID
}

// IsOperator reports whether id matches the configured operator. With
// no operator configured every operator-only operation is denied.
func (d *Daemon) IsOperator(id queue.RequesterID) bool {
	operator := strings.TrimSpace(d.cfg.Operator.RequesterID)
	return operator != "" && operator == id.String()
}

// Join enqueues the requester and returns the assigned position.
func (d *Daemon) Join(ctx context.Context, id queue.RequesterID, displayName, note string) (int, error) {
	position, err := d.service.Enqueue(ctx, id, displayName, note)
	if err != nil {
		d.reportFault(ctx, "join", err)
		return 0, err
	}
	if nerr := d.notifier.NotifyJoined(ctx, displayName, position); nerr != nil {
		d.logger.Warn("join notification failed", logging.Error(nerr))
	}
	return position, nil
}

// Leave withdraws the requester's own entry.
func (d *Daemon) Leave(ctx context.Context, id queue.RequesterID) error {
	if err := d.service.Withdraw(ctx, id); err != nil {
		d.reportFault(ctx, "leave", err)
		return err
	}
	if nerr := d.notifier.NotifyWithdrawn(ctx, id.String()); nerr != nil {
		d.logger.Warn("leave notification failed", logging.Error(nerr))
	}
	return nil
}

// Position returns the requester's current 1-based position.
func (d *Daemon) Position(ctx context.Context, id queue.RequesterID) (int, error) {
	position, err := d.service.PositionOf(ctx, id)
	if err != nil {
		d.reportFault(ctx, "position", err)
		return 0, err
	}
	return position, nil
}

// List returns the full queue for the operator. Non-operators are
// rejected with ErrNotAuthorized.
func (d *Daemon) List(ctx context.Context, caller queue.RequesterID) ([]api.Entry, error) {
	if !d.IsOperator(caller) {
		return nil, ErrNotAuthorized
	}
	entries, err := d.service.ListAll(ctx)
	if err != nil {
		d.reportFault(ctx, "list", err)
		return nil, err
	}
	return entries, nil
}

// Remove deletes the target's entry on behalf of the operator.
// Non-operators are rejected with ErrNotAuthorized.
func (d *Daemon) Remove(ctx context.Context, caller, target queue.RequesterID) error {
	if !d.IsOperator(caller) {
		return ErrNotAuthorized
	}
	if err := d.service.AdminRemove(ctx, target); err != nil {
		d.reportFault(ctx, "remove", err)
		return err
	}
	if nerr := d.notifier.NotifyRemoved(ctx, target.String()); nerr != nil {
		d.logger.Warn("remove notification failed", logging.Error(nerr))
	}
	return nil
}

// TestNotification triggers a test notification using the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}

// Status returns the current daemon status.
func (d *Daemon) Status(ctx context.Context) (Status, error) {
	count, err := d.service.Count(ctx)
	if err != nil {
		return Status{}, fmt.Errorf("queue length: %w", err)
	}
	return Status{
		Running:      d.running.Load(),
		SessionID:    d.sessionID,
		QueueLength:  count,
		QueueDBPath:  d.cfg.DBPath(),
		LockFilePath: d.lockPath,
		OperatorSet:  strings.TrimSpace(d.cfg.Operator.RequesterID) != "",
	}, nil
}

// reportFault pushes storage faults to the operator. Business-rule
// outcomes are expected and never reported.
func (d *Daemon) reportFault(ctx context.Context, op string, err error) {
	if api.IsBusinessError(err) {
		return
	}
	if nerr := d.notifier.NotifyError(ctx, err, op); nerr != nil {
		d.logger.Warn("error notification failed", logging.Error(nerr))
	}
}
