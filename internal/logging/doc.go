// Package logging builds the slog loggers used across consultq:
// console or JSON output, optional log file, and small attr helpers so
// call sites stay uniform.
package logging
