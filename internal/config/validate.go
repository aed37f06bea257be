package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must not be empty")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must not be empty")
	}
	if c.Daemon.MessageLimit < 16 {
		return fmt.Errorf("daemon.message_limit %d too small; need at least 16", c.Daemon.MessageLimit)
	}
	if _, err := language.Parse(c.Daemon.Language); err != nil {
		return fmt.Errorf("daemon.language %q: %w", c.Daemon.Language, err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q: must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q: must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}
