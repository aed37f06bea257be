package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"consultq/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be reported missing")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %s, got %s", path, resolved)
	}
	if cfg.Daemon.MessageLimit != 2000 {
		t.Fatalf("expected default message limit, got %d", cfg.Daemon.MessageLimit)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !filepath.IsAbs(cfg.Paths.StateDir) {
		t.Fatalf("expected state dir expanded to absolute path, got %s", cfg.Paths.StateDir)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`state_dir = "` + filepath.Join(dir, "state") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		"[daemon]",
		"message_limit = 500",
		"[operator]",
		`requester_id = "op-1"`,
		"[logging]",
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Daemon.MessageLimit != 500 {
		t.Fatalf("expected message limit 500, got %d", cfg.Daemon.MessageLimit)
	}
	if cfg.Operator.RequesterID != "op-1" {
		t.Fatalf("expected operator op-1, got %q", cfg.Operator.RequesterID)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("CONSULTQ_OPERATOR_ID", "env-operator")
	t.Setenv("CONSULTQ_LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Operator.RequesterID != "env-operator" {
		t.Fatalf("expected env operator override, got %q", cfg.Operator.RequesterID)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env level override, got %s", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"verbose\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestValidateRejectsTinyMessageLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Daemon.MessageLimit = 4
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for tiny message limit")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[operator]") {
		t.Fatal("expected sample to contain operator section")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to be found")
	}
	if cfg.Daemon.MessageLimit != 2000 {
		t.Fatalf("unexpected sample message limit: %d", cfg.Daemon.MessageLimit)
	}
}
