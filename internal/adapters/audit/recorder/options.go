// Package recorder defines the consumer that retains recent roster changes.
package recorder

import (
	"github.com/mergington/activities/pkg/logger"
)

// Option applies a configuration option to the InMemoryRecorder.
type Option func(*InMemoryRecorder)

// WithName sets the recorder name for identification and logging.
func WithName(name string) Option {
	return func(r *InMemoryRecorder) {
		if name != "" {
			r.name = name
		}
	}
}

// WithLogger sets a custom logger for the recorder.
func WithLogger(logger logger.Logger) Option {
	return func(r *InMemoryRecorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHistorySize sets how many recent changes the recorder retains.
func WithHistorySize(size int) Option {
	return func(r *InMemoryRecorder) {
		if size > 0 {
			r.historySize = size
		}
	}
}
