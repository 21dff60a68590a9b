// Package repository defines the activity registry interface and errors.
package repository

import (
	"time"

	"github.com/mergington/activities/internal/domain/model"
)

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithCatalog seeds the registry with the given activities instead of
// the built-in default catalog.
func WithCatalog(catalog []model.Activity) Option {
	return func(s *MemStore) {
		if catalog != nil {
			s.seed = catalog
		}
	}
}

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *MemStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}
