package ipc

import "consultq/internal/api"

// Outcome codes carried in responses. Codes classify business-rule
// results so clients can branch without parsing localized messages.
const (
	CodeOK               = "ok"
	CodeAlreadyQueued    = "already_queued"
	CodeNotQueued        = "not_queued"
	CodeNotFound         = "not_found"
	CodeInvalidRequester = "invalid_requester"
	CodeNotAuthorized    = "not_authorized"
	CodeStorageFault     = "storage_fault"
)

// JoinRequest asks the daemon to enqueue a requester.
type JoinRequest struct {
	RequesterID string `json:"requester_id"`
	DisplayName string `json:"display_name"`
	Note        string `json:"note,omitempty"`
}

// JoinResponse reports the enqueue outcome.
type JoinResponse struct {
	Ok       bool   `json:"ok"`
	Code     string `json:"code"`
	Position int    `json:"position,omitempty"`
	Message  string `json:"message"`
}

// LeaveRequest asks the daemon to withdraw the requester's own entry.
type LeaveRequest struct {
	RequesterID string `json:"requester_id"`
}

// LeaveResponse reports the withdraw outcome.
type LeaveResponse struct {
	Ok      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PositionRequest asks for the requester's current position.
type PositionRequest struct {
	RequesterID string `json:"requester_id"`
}

// PositionResponse reports the position outcome.
type PositionResponse struct {
	Ok       bool   `json:"ok"`
	Code     string `json:"code"`
	Position int    `json:"position,omitempty"`
	Message  string `json:"message"`
}

// ListRequest asks for the full queue. The caller must be the
// configured operator.
type ListRequest struct {
	RequesterID string `json:"requester_id"`
}

// ListResponse carries the queue both structured and preformatted.
// Block is bounded by the daemon's message limit; Truncated reports
// whether entries were dropped from it.
type ListResponse struct {
	Ok        bool        `json:"ok"`
	Code      string      `json:"code"`
	Entries   []api.Entry `json:"entries,omitempty"`
	Block     string      `json:"block,omitempty"`
	Truncated bool        `json:"truncated,omitempty"`
	Message   string      `json:"message,omitempty"`
}

// RemoveRequest asks the daemon to remove the target's entry on behalf
// of the operator.
type RemoveRequest struct {
	RequesterID string `json:"requester_id"`
	Target      string `json:"target"`
}

// RemoveResponse reports the removal outcome.
type RemoveResponse struct {
	Ok      bool   `json:"ok"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusRequest asks for daemon runtime information.
type StatusRequest struct{}

// StatusResponse carries daemon runtime information.
type StatusResponse struct {
	Running      bool   `json:"running"`
	SessionID    string `json:"session_id"`
	QueueLength  int    `json:"queue_length"`
	QueueDBPath  string `json:"queue_db_path"`
	LockPath     string `json:"lock_path"`
	OperatorSet  bool   `json:"operator_set"`
	MessageLimit int    `json:"message_limit"`
}

// TestNotificationRequest asks the daemon to send a test notification.
type TestNotificationRequest struct{}

// TestNotificationResponse reports the test notification outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
