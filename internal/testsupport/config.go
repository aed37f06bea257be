// Package testsupport provides shared fixtures for consultq tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"consultq/internal/config"
)

// ConfigOption allows callers to customize the generated test
// configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithOperator sets the privileged operator id on the test config.
func WithOperator(id string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Operator.RequesterID = id
	}
}

// WithMessageLimit overrides the listing message limit.
func WithMessageLimit(limit int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Daemon.MessageLimit = limit
	}
}
