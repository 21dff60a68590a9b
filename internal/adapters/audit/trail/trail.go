// Package trail defines the contract for recording and consuming roster changes.
//
// Implementations may use channels or more advanced structures. Recording is
// best effort: a full trail never blocks or fails a signup.
package trail

import (
	"context"
	"sync"
	"time"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/metrics"
)

// Default trail configuration constants.
const (
	defaultTrailCapacity = 1024
	defaultBufferSize    = 1024
)

// Change represents the payload type flowing through the trail.
// Using the model.RosterChange type for type safety.
type Change = model.RosterChange

// Trail provides non-blocking record and channel-based consume semantics.
type Trail interface {
	// Record adds a roster change to the trail.
	// Returns false if the trail is full and the change was not recorded.
	Record(ctx context.Context, c Change) bool

	// Changes returns a channel that will receive changes as they become available.
	// The channel will be closed when the trail is closed.
	Changes(ctx context.Context) <-chan Change

	// Len returns the current number of changes waiting in the trail.
	Len(ctx context.Context) int

	// Close gracefully shuts down the trail.
	// After closing, no new changes can be recorded and the changes channel will be closed.
	Close() error

	// IsClosed returns true if the trail has been closed.
	IsClosed() bool
}

// InMemoryTrail implements Trail using a buffered channel.
type InMemoryTrail struct {
	changes    chan Change
	capacity   int
	bufferSize int
	mu         sync.RWMutex
	closed     bool
}

// NewInMemoryTrail creates a new in-memory trail with configuration options.
func NewInMemoryTrail(opts ...Option) *InMemoryTrail {
	tr := &InMemoryTrail{
		capacity:   defaultTrailCapacity,
		bufferSize: defaultBufferSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(tr)
	}

	// Initialize the changes channel with the configured buffer size
	tr.changes = make(chan Change, tr.bufferSize)

	// Initialize metrics
	metrics.UpdateAuditTrailCapacity(tr.capacity)
	metrics.UpdateAuditTrailSize(0)
	metrics.UpdateAuditTrailUtilization(0.0)

	return tr
}

// Record adds a roster change to the trail.
func (tr *InMemoryTrail) Record(ctx context.Context, c Change) bool {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordAuditRecordLatency(float64(latency))
	}()

	tr.mu.RLock()
	defer tr.mu.RUnlock()

	if tr.closed {
		metrics.RecordAuditChangeDropped()
		metrics.RecordErrorByComponent("audit", "closed")
		return false
	}

	// Check if we're at capacity
	if len(tr.changes) >= tr.capacity {
		metrics.RecordAuditChangeDropped()
		metrics.RecordErrorByComponent("audit", "capacity_exceeded")
		return false
	}

	select {
	case tr.changes <- c:
		metrics.RecordAuditChangeRecorded()
		// Update trail size and utilization
		currentSize := len(tr.changes)
		metrics.UpdateAuditTrailSize(currentSize)
		utilization := float64(currentSize) / float64(tr.capacity)
		metrics.UpdateAuditTrailUtilization(utilization)
		return true
	case <-ctx.Done():
		metrics.RecordAuditChangeDropped()
		metrics.RecordErrorByComponent("audit", "context_cancelled")
		return false // context cancelled
	default:
		metrics.RecordAuditChangeDropped()
		metrics.RecordErrorByComponent("audit", "trail_full")
		return false // trail is full
	}
}

// Changes returns a channel that will receive changes as they become available.
func (tr *InMemoryTrail) Changes(ctx context.Context) <-chan Change {
	// Wrap the channel to track consume metrics
	out := make(chan Change)
	go func() {
		defer close(out)
		for change := range tr.changes {
			select {
			case out <- change:
				// Update trail size and utilization after consume
				currentSize := len(tr.changes)
				metrics.UpdateAuditTrailSize(currentSize)
				utilization := float64(currentSize) / float64(tr.capacity)
				metrics.UpdateAuditTrailUtilization(utilization)
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of changes waiting in the trail.
func (tr *InMemoryTrail) Len(ctx context.Context) int {
	size := len(tr.changes)
	metrics.UpdateAuditTrailSize(size)
	utilization := float64(size) / float64(tr.capacity)
	metrics.UpdateAuditTrailUtilization(utilization)
	return size
}

// Close gracefully shuts down the trail.
func (tr *InMemoryTrail) Close() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if tr.closed {
		return nil // already closed
	}

	// Close the changes channel to signal consumers to stop
	close(tr.changes)
	tr.closed = true

	return nil
}

// IsClosed returns true if the trail has been closed.
func (tr *InMemoryTrail) IsClosed() bool {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	return tr.closed
}
