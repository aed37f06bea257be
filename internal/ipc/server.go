package ipc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"consultq/internal/api"
	"consultq/internal/daemon"
	"consultq/internal/logging"
	"consultq/internal/queue"
	"consultq/internal/render"
)

// Server exposes the waiting-list operations via JSON-RPC over a Unix
// domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, messages *render.Messages, messageLimit int, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if messages == nil {
		return nil, errors.New("ipc server requires message catalog")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{
		daemon:       d,
		messages:     messages,
		messageLimit: messageLimit,
		logger:       logging.NewComponentLogger(logger, "ipc"),
		ctx:          ctx,
	}
	if err := rpcServer.RegisterName("Waitlist", srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed",
					logging.Error(err),
					logging.String(logging.FieldEventType, "ipc_accept_failed"))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon       *daemon.Daemon
	messages     *render.Messages
	messageLimit int
	logger       *slog.Logger
	ctx          context.Context
}

// storageFailure logs the fault with full detail and returns the
// generic user-facing code and message. Internal error text never
// crosses the socket.
func (s *service) storageFailure(op string, err error) (string, string) {
	s.logger.Error("operation failed",
		logging.String(logging.FieldEventType, "queue_op_failed"),
		logging.String("op", op),
		logging.Error(err))
	return CodeStorageFault, s.messages.StorageFault()
}

func (s *service) Join(req JoinRequest, resp *JoinResponse) error {
	id, err := queue.ParseRequesterID(req.RequesterID)
	if err != nil {
		resp.Ok = false
		resp.Code = CodeInvalidRequester
		resp.Message = s.messages.InvalidRequester()
		return nil
	}

	position, err := s.daemon.Join(s.ctx, id, req.DisplayName, req.Note)
	switch {
	case err == nil:
		resp.Ok = true
		resp.Code = CodeOK
		resp.Position = position
		resp.Message = s.messages.Joined(position)
		return nil
	case errors.Is(err, api.ErrAlreadyQueued):
		resp.Ok = false
		resp.Code = CodeAlreadyQueued
		resp.Message = s.messages.AlreadyQueued()
		return nil
	default:
		resp.Ok = false
		resp.Code, resp.Message = s.storageFailure("join", err)
		return nil
	}
}

func (s *service) Leave(req LeaveRequest, resp *LeaveResponse) error {
	id, err := queue.ParseRequesterID(req.RequesterID)
	if err != nil {
		resp.Ok = false
		resp.Code = CodeInvalidRequester
		resp.Message = s.messages.InvalidRequester()
		return nil
	}

	switch err := s.daemon.Leave(s.ctx, id); {
	case err == nil:
		resp.Ok = true
		resp.Code = CodeOK
		resp.Message = s.messages.Withdrawn()
		return nil
	case errors.Is(err, api.ErrNotQueued):
		resp.Ok = false
		resp.Code = CodeNotQueued
		resp.Message = s.messages.NotQueued()
		return nil
	default:
		resp.Ok = false
		resp.Code, resp.Message = s.storageFailure("leave", err)
		return nil
	}
}

func (s *service) Position(req PositionRequest, resp *PositionResponse) error {
	id, err := queue.ParseRequesterID(req.RequesterID)
	if err != nil {
		resp.Ok = false
		resp.Code = CodeInvalidRequester
		resp.Message = s.messages.InvalidRequester()
		return nil
	}

	position, err := s.daemon.Position(s.ctx, id)
	switch {
	case err == nil:
		resp.Ok = true
		resp.Code = CodeOK
		resp.Position = position
		resp.Message = s.messages.Position(position)
		return nil
	case errors.Is(err, api.ErrNotQueued):
		resp.Ok = false
		resp.Code = CodeNotQueued
		resp.Message = s.messages.NotQueued()
		return nil
	default:
		resp.Ok = false
		resp.Code, resp.Message = s.storageFailure("position", err)
		return nil
	}
}

func (s *service) List(req ListRequest, resp *ListResponse) error {
	id, err := queue.ParseRequesterID(req.RequesterID)
	if err != nil {
		resp.Ok = false
		resp.Code = CodeInvalidRequester
		resp.Message = s.messages.InvalidRequester()
		return nil
	}

	entries, err := s.daemon.List(s.ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, daemon.ErrNotAuthorized):
		resp.Ok = false
		resp.Code = CodeNotAuthorized
		resp.Message = s.messages.NotAuthorized()
		return nil
	default:
		resp.Ok = false
		resp.Code, resp.Message = s.storageFailure("list", err)
		return nil
	}

	resp.Ok = true
	resp.Code = CodeOK
	if len(entries) == 0 {
		resp.Message = s.messages.EmptyQueue()
		return nil
	}
	resp.Entries = entries
	resp.Block, resp.Truncated = render.FormatListing(entries, s.messageLimit)
	return nil
}

func (s *service) Remove(req RemoveRequest, resp *RemoveResponse) error {
	caller, err := queue.ParseRequesterID(req.RequesterID)
	if err != nil {
		resp.Ok = false
		resp.Code = CodeInvalidRequester
		resp.Message = s.messages.InvalidRequester()
		return nil
	}
	target, err := queue.ParseRequesterID(req.Target)
	if err != nil {
		resp.Ok = false
		resp.Code = CodeInvalidRequester
		resp.Message = s.messages.InvalidRequester()
		return nil
	}

	switch err := s.daemon.Remove(s.ctx, caller, target); {
	case err == nil:
		resp.Ok = true
		resp.Code = CodeOK
		resp.Message = s.messages.Removed(target.String())
		s.logger.Info("entry removed via IPC",
			logging.String(logging.FieldEventType, "queue_remove"),
			logging.String("requester_id", target.String()))
		return nil
	case errors.Is(err, api.ErrEntryNotFound):
		resp.Ok = false
		resp.Code = CodeNotFound
		resp.Message = s.messages.EntryNotFound(target.String())
		return nil
	case errors.Is(err, daemon.ErrNotAuthorized):
		resp.Ok = false
		resp.Code = CodeNotAuthorized
		resp.Message = s.messages.NotAuthorized()
		return nil
	default:
		resp.Ok = false
		resp.Code, resp.Message = s.storageFailure("remove", err)
		return nil
	}
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status, err := s.daemon.Status(s.ctx)
	if err != nil {
		s.logger.Error("status failed",
			logging.String(logging.FieldEventType, "status_failed"),
			logging.Error(err))
		return errors.New("daemon status unavailable")
	}
	resp.Running = status.Running
	resp.SessionID = status.SessionID
	resp.QueueLength = status.QueueLength
	resp.QueueDBPath = status.QueueDBPath
	resp.LockPath = status.LockFilePath
	resp.OperatorSet = status.OperatorSet
	resp.MessageLimit = s.messageLimit
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.ctx)
	resp.Sent = sent
	resp.Message = message
	return err
}
