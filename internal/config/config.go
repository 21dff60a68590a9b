// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error sentinels.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// SeedFile optionally points at a YAML catalog used to seed the
	// activity registry instead of the built-in defaults.
	SeedFile string `koanf:"seed_file"`

	// AuditTrailSize bounds the in-memory trail of pending roster changes.
	AuditTrailSize int `koanf:"audit_trail_size"`

	// AuditHistorySize sets how many recorded changes are retained.
	AuditHistorySize int `koanf:"audit_history_size"`

	// MaxAuditLimit caps GET /audit?limit.
	MaxAuditLimit int `koanf:"max_audit_limit"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8000",
		AuditTrailSize:   1024,
		AuditHistorySize: 256,
		MaxAuditLimit:    100,
	}
}
