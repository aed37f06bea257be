package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"consultq/internal/config"
)

const userAgent = "ConsultQ-Go/0.1.0"

// Service defines the notification surface exposed to the daemon.
type Service interface {
	NotifyJoined(ctx context.Context, displayName string, position int) error
	NotifyWithdrawn(ctx context.Context, displayName string) error
	NotifyRemoved(ctx context.Context, requesterID string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		events:   cfg.Notifications,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	events   config.Notifications
}

func (n *ntfyService) NotifyJoined(ctx context.Context, displayName string, position int) error {
	if !n.events.Joined {
		return nil
	}
	displayName = strings.TrimSpace(displayName)
	data := payload{
		title:   "ConsultQ - Joined",
		message: fmt.Sprintf("%s joined the queue at position %d", displayName, position),
		tags:    []string{"consultq", "queue", "joined"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyWithdrawn(ctx context.Context, displayName string) error {
	if !n.events.Withdrawn {
		return nil
	}
	displayName = strings.TrimSpace(displayName)
	data := payload{
		title:   "ConsultQ - Withdrawn",
		message: fmt.Sprintf("%s left the queue", displayName),
		tags:    []string{"consultq", "queue", "withdrawn"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRemoved(ctx context.Context, requesterID string) error {
	if !n.events.Removed {
		return nil
	}
	requesterID = strings.TrimSpace(requesterID)
	data := payload{
		title:   "ConsultQ - Removed",
		message: fmt.Sprintf("Removed %s from the queue", requesterID),
		tags:    []string{"consultq", "queue", "removed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.events.Errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "ConsultQ - Error",
		message:  builder.String(),
		tags:     []string{"consultq", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "ConsultQ - Test",
		message:  "Notification system test",
		tags:     []string{"consultq", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyJoined(context.Context, string, int) error  { return nil }
func (noopService) NotifyWithdrawn(context.Context, string) error    { return nil }
func (noopService) NotifyRemoved(context.Context, string) error      { return nil }
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
