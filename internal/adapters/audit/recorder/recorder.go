// Package recorder defines the consumer that retains recent roster changes.
package recorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Default recorder configuration constants.
const (
	defaultHistorySize = 256
)

// Change abstracts what the recorder reads off the trail.
// Using the model.RosterChange type for consistency.
type Change = model.RosterChange

// Source defines how the recorder receives roster changes.
type Source interface {
	Changes(ctx context.Context) <-chan Change
}

// Recorder consumes roster changes and retains a bounded history.
type Recorder interface {
	// Run starts the recorder loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the recorder.
	Shutdown(ctx context.Context) error

	// Recent returns up to n retained changes, newest first.
	Recent(ctx context.Context, n int) []Change

	// Len returns the number of retained changes.
	Len(ctx context.Context) int
}

// InMemoryRecorder implements Recorder with a fixed-size ring buffer.
type InMemoryRecorder struct {
	source Source
	name   string

	mu          sync.RWMutex
	ring        []Change
	next        int
	count       int
	historySize int

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewInMemoryRecorder creates a new recorder with configuration options.
func NewInMemoryRecorder(source Source, opts ...Option) *InMemoryRecorder {
	r := &InMemoryRecorder{
		source:      source,
		name:        "recorder", // default name
		historySize: defaultHistorySize,
		shutdown:    make(chan struct{}),
		done:        make(chan struct{}),
		logger:      logger.Get().Named("recorder"), // will be updated by options
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	// Set up logger with recorder name if not already set
	if r.name != "recorder" {
		r.logger = r.logger.Named(r.name)
	}

	r.ring = make([]Change, r.historySize)

	return r
}

// Run starts the recorder loop.
func (r *InMemoryRecorder) Run(ctx context.Context) {
	defer func() {
		close(r.done)
	}()

	changeChan := r.source.Changes(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case change, ok := <-changeChan:
			if !ok {
				// Channel closed, recorder should stop
				return
			}

			r.retain(ctx, change)
		}
	}
}

// Shutdown gracefully stops the recorder.
func (r *InMemoryRecorder) Shutdown(ctx context.Context) error {
	// Signal shutdown
	close(r.shutdown)

	// Wait for recorder to finish or context to timeout
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		r.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Recent returns up to n retained changes, newest first.
func (r *InMemoryRecorder) Recent(ctx context.Context, n int) []Change {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n < 1 || r.count == 0 {
		return []Change{}
	}
	if n > r.count {
		n = r.count
	}

	out := make([]Change, 0, n)
	for i := 1; i <= n; i++ {
		idx := (r.next - i + r.historySize) % r.historySize
		out = append(out, r.ring[idx])
	}
	return out
}

// Len returns the number of retained changes.
func (r *InMemoryRecorder) Len(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// retain stores a single change in the ring buffer.
func (r *InMemoryRecorder) retain(ctx context.Context, c Change) {
	start := time.Now()

	r.mu.Lock()
	r.ring[r.next] = c
	r.next = (r.next + 1) % r.historySize
	if r.count < r.historySize {
		r.count++
	}
	size := r.count
	r.mu.Unlock()

	metrics.UpdateAuditHistorySize(size)

	r.logger.Debug(ctx, "roster change retained",
		logger.String("action", c.Action),
		logger.String("activity", c.Activity),
		logger.String("email", c.Email),
		logger.Duration("took", time.Since(start)),
	)
}
