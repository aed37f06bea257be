// Package queueaccess gives the CLI one interface over the two ways to
// reach the waiting list: the daemon socket when consultqd is running,
// or the store directly when it is not. Direct store access runs on
// the operator's own machine against the operator's own database, so
// it skips the socket-side authorization checks.
package queueaccess

import (
	"context"
	"errors"

	"consultq/internal/api"
	"consultq/internal/config"
	"consultq/internal/ipc"
	"consultq/internal/logging"
	"consultq/internal/queue"
	"consultq/internal/render"
)

// Access provides waiting-list operations regardless of IPC or direct
// store backing.
type Access interface {
	Join(ctx context.Context, requesterID, displayName, note string) (*ipc.JoinResponse, error)
	Leave(ctx context.Context, requesterID string) (*ipc.LeaveResponse, error)
	Position(ctx context.Context, requesterID string) (*ipc.PositionResponse, error)
	List(ctx context.Context, requesterID string) (*ipc.ListResponse, error)
	Remove(ctx context.Context, requesterID, target string) (*ipc.RemoveResponse, error)
}

// NewIPCAccess returns an Access backed by daemon IPC.
func NewIPCAccess(client *ipc.Client) Access {
	return &ipcAccess{client: client}
}

// NewStoreAccess returns an Access backed by direct DB access.
func NewStoreAccess(store *queue.Store, cfg *config.Config) (Access, error) {
	messages, err := render.NewMessages(cfg.Daemon.Language)
	if err != nil {
		return nil, err
	}
	return &storeAccess{
		service:      api.NewService(store, logging.NewNop()),
		messages:     messages,
		messageLimit: cfg.Daemon.MessageLimit,
	}, nil
}

type ipcAccess struct {
	client *ipc.Client
}

func (a *ipcAccess) Join(_ context.Context, requesterID, displayName, note string) (*ipc.JoinResponse, error) {
	return a.client.Join(requesterID, displayName, note)
}

func (a *ipcAccess) Leave(_ context.Context, requesterID string) (*ipc.LeaveResponse, error) {
	return a.client.Leave(requesterID)
}

func (a *ipcAccess) Position(_ context.Context, requesterID string) (*ipc.PositionResponse, error) {
	return a.client.Position(requesterID)
}

func (a *ipcAccess) List(_ context.Context, requesterID string) (*ipc.ListResponse, error) {
	return a.client.List(requesterID)
}

func (a *ipcAccess) Remove(_ context.Context, requesterID, target string) (*ipc.RemoveResponse, error) {
	return a.client.Remove(requesterID, target)
}

type storeAccess struct {
	service      *api.Service
	messages     *render.Messages
	messageLimit int
}

func (a *storeAccess) Join(ctx context.Context, requesterID, displayName, note string) (*ipc.JoinResponse, error) {
	id, err := queue.ParseRequesterID(requesterID)
	if err != nil {
		return &ipc.JoinResponse{Code: ipc.CodeInvalidRequester, Message: a.messages.InvalidRequester()}, nil
	}

	position, err := a.service.Enqueue(ctx, id, displayName, note)
	switch {
	case err == nil:
		return &ipc.JoinResponse{
			Ok:       true,
			Code:     ipc.CodeOK,
			Position: position,
			Message:  a.messages.Joined(position),
		}, nil
	case errors.Is(err, api.ErrAlreadyQueued):
		return &ipc.JoinResponse{Code: ipc.CodeAlreadyQueued, Message: a.messages.AlreadyQueued()}, nil
	default:
		return nil, err
	}
}

func (a *storeAccess) Leave(ctx context.Context, requesterID string) (*ipc.LeaveResponse, error) {
	id, err := queue.ParseRequesterID(requesterID)
	if err != nil {
		return &ipc.LeaveResponse{Code: ipc.CodeInvalidRequester, Message: a.messages.InvalidRequester()}, nil
	}

	switch err := a.service.Withdraw(ctx, id); {
	case err == nil:
		return &ipc.LeaveResponse{Ok: true, Code: ipc.CodeOK, Message: a.messages.Withdrawn()}, nil
	case errors.Is(err, api.ErrNotQueued):
		return &ipc.LeaveResponse{Code: ipc.CodeNotQueued, Message: a.messages.NotQueued()}, nil
	default:
		return nil, err
	}
}

func (a *storeAccess) Position(ctx context.Context, requesterID string) (*ipc.PositionResponse, error) {
	id, err := queue.ParseRequesterID(requesterID)
	if err != nil {
		return &ipc.PositionResponse{Code: ipc.CodeInvalidRequester, Message: a.messages.InvalidRequester()}, nil
	}

	position, err := a.service.PositionOf(ctx, id)
	switch {
	case err == nil:
		return &ipc.PositionResponse{
			Ok:       true,
			Code:     ipc.CodeOK,
			Position: position,
			Message:  a.messages.Position(position),
		}, nil
	case errors.Is(err, api.ErrNotQueued):
		return &ipc.PositionResponse{Code: ipc.CodeNotQueued, Message: a.messages.NotQueued()}, nil
	default:
		return nil, err
	}
}

func (a *storeAccess) List(ctx context.Context, _ string) (*ipc.ListResponse, error) {
	entries, err := a.service.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &ipc.ListResponse{Ok: true, Code: ipc.CodeOK}
	if len(entries) == 0 {
		resp.Message = a.messages.EmptyQueue()
		return resp, nil
	}
	resp.Entries = entries
	resp.Block, resp.Truncated = render.FormatListing(entries, a.messageLimit)
	return resp, nil
}

func (a *storeAccess) Remove(ctx context.Context, _, target string) (*ipc.RemoveResponse, error) {
	id, err := queue.ParseRequesterID(target)
	if err != nil {
		return &ipc.RemoveResponse{Code: ipc.CodeInvalidRequester, Message: a.messages.InvalidRequester()}, nil
	}

	switch err := a.service.AdminRemove(ctx, id); {
	case err == nil:
		return &ipc.RemoveResponse{Ok: true, Code: ipc.CodeOK, Message: a.messages.Removed(id.String())}, nil
	case errors.Is(err, api.ErrEntryNotFound):
		return &ipc.RemoveResponse{Code: ipc.CodeNotFound, Message: a.messages.EntryNotFound(id.String())}, nil
	default:
		return nil, err
	}
}
