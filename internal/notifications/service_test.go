package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"consultq/internal/config"
	"consultq/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyJoined(context.Background(), "Alice", 1); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

type capturedRequest struct {
	title    string
	tags     string
	priority string
	body     string
}

func captureServer(t *testing.T, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		captured.title = r.Header.Get("Title")
		captured.tags = r.Header.Get("Tags")
		captured.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured.body = string(body)
		_ = r.Body.Close()
		w.WriteHeader(http.StatusOK)
	}))
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		send           func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "joined",
			send: func(svc notifications.Service) error {
				return svc.NotifyJoined(context.Background(), "Alice", 4)
			},
			expectTitle:   "ConsultQ - Joined",
			expectMessage: "Alice joined the queue at position 4",
			expectTags:    "consultq,queue,joined",
		},
		{
			name: "withdrawn",
			send: func(svc notifications.Service) error {
				return svc.NotifyWithdrawn(context.Background(), "Bob")
			},
			expectTitle:   "ConsultQ - Withdrawn",
			expectMessage: "Bob left the queue",
			expectTags:    "consultq,queue,withdrawn",
		},
		{
			name: "removed",
			send: func(svc notifications.Service) error {
				return svc.NotifyRemoved(context.Background(), "carol:42")
			},
			expectTitle:   "ConsultQ - Removed",
			expectMessage: "Removed carol:42 from the queue",
			expectTags:    "consultq,queue,removed",
		},
		{
			name: "error",
			send: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("database is locked"), "enqueue")
			},
			expectTitle:    "ConsultQ - Error",
			expectMessage:  "Error with enqueue: database is locked",
			expectTags:     "consultq,error,alert",
			expectPriority: "high",
		},
		{
			name: "test notification",
			send: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "ConsultQ - Test",
			expectMessage:  "Notification system test",
			expectTags:     "consultq,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured capturedRequest
			server := captureServer(t, &captured)
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.send(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceHonorsEventToggles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected call for disabled event: %s", r.URL.String())
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	cfg.Notifications.Joined = false
	cfg.Notifications.Withdrawn = false
	cfg.Notifications.Removed = false
	cfg.Notifications.Errors = false

	svc := notifications.NewService(&cfg)
	ctx := context.Background()
	if err := svc.NotifyJoined(ctx, "Alice", 1); err != nil {
		t.Fatalf("NotifyJoined: %v", err)
	}
	if err := svc.NotifyWithdrawn(ctx, "Alice"); err != nil {
		t.Fatalf("NotifyWithdrawn: %v", err)
	}
	if err := svc.NotifyRemoved(ctx, "alice"); err != nil {
		t.Fatalf("NotifyRemoved: %v", err)
	}
	if err := svc.NotifyError(ctx, errors.New("boom"), "test"); err != nil {
		t.Fatalf("NotifyError: %v", err)
	}
}

func TestNtfyServiceReportsServerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for 503 response")
	}
}
