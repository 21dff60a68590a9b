// Package trail defines the contract for recording and consuming roster changes.
package trail

// Option applies a configuration option to the InMemoryTrail.
type Option func(*InMemoryTrail)

// WithCapacity sets the maximum capacity of the trail.
func WithCapacity(capacity int) Option {
	return func(tr *InMemoryTrail) {
		if capacity > 0 {
			tr.capacity = capacity
		}
	}
}

// WithBufferSize sets the buffer size for the changes channel.
func WithBufferSize(size int) Option {
	return func(tr *InMemoryTrail) {
		if size > 0 {
			tr.bufferSize = size
		}
	}
}
