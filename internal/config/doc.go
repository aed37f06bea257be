// Package config loads, validates, and normalizes the consultq
// configuration: TOML file first, then CONSULTQ_* environment
// overrides.
package config
