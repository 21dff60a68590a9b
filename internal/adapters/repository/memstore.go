// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/metrics"
)

// Map-based, in-memory Registry implementation.
//
// The registry is seeded once at construction and mutated only through
// Signup and Unregister. Rosters keep signup order. All reads hand out
// deep copies so callers never share the underlying slices.

// defaultMetricsUpdateInterval is how often roster gauges refresh.
const defaultMetricsUpdateInterval = 5 * time.Second

// MemStore is an in-memory activity registry guarded by a RWMutex.
type MemStore struct {
	mu                    sync.RWMutex
	byName                map[string]*model.Activity
	order                 []string // catalog order for List
	seed                  []model.Activity
	metricsUpdateInterval time.Duration

	// Background metrics management
	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemStore constructs a registry seeded with the given catalog.
// When no catalog option is supplied it seeds model.DefaultCatalog().
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		byName:                make(map[string]*model.Activity),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.seed == nil {
		s.seed = model.DefaultCatalog()
	}

	for i := range s.seed {
		a := s.seed[i].Clone()
		if _, ok := s.byName[a.Name]; ok {
			continue // first definition of a name wins
		}
		s.byName[a.Name] = &a
		s.order = append(s.order, a.Name)
	}

	// Initialize gauges and start the periodic refresh
	s.stopChan = make(chan struct{})
	s.updateMetrics()
	s.startMetricsUpdater(ctx)

	return s
}

// Close gracefully shuts down the background metrics goroutine.
func (s *MemStore) Close() error {
	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// List returns every activity in catalog order.
func (s *MemStore) List(ctx context.Context) ([]model.Activity, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryQueryLatency(latencyMs(start))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Activity, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name].Clone())
	}
	return out, nil
}

// Get returns a single activity by name.
func (s *MemStore) Get(ctx context.Context, name string) (model.Activity, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryQueryLatency(latencyMs(start))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byName[name]
	if !ok {
		metrics.RecordActivityLookupMiss()
		metrics.RecordErrorByComponent("registry", "not_found")
		return model.Activity{}, ErrActivityNotFound
	}
	return a.Clone(), nil
}

// Signup adds a student email to the named activity's roster.
func (s *MemStore) Signup(ctx context.Context, name, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryUpdateLatency(latencyMs(start))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byName[name]
	if !ok {
		metrics.RecordActivityLookupMiss()
		metrics.RecordErrorByComponent("registry", "not_found")
		return ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		metrics.RecordErrorByComponent("registry", "already_signed_up")
		return ErrAlreadySignedUp
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// Unregister removes a student email from the named activity's roster.
func (s *MemStore) Unregister(ctx context.Context, name, email string) error {
	start := time.Now()
	defer func() {
		metrics.RecordRegistryUpdateLatency(latencyMs(start))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byName[name]
	if !ok {
		metrics.RecordActivityLookupMiss()
		metrics.RecordErrorByComponent("registry", "not_found")
		return ErrActivityNotFound
	}
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return nil
		}
	}
	metrics.RecordErrorByComponent("registry", "not_registered")
	return ErrNotRegistered
}

// Count returns the number of activities in the catalog.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}

// ParticipantCount returns the number of roster entries across all activities.
func (s *MemStore) ParticipantCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, a := range s.byName {
		total += len(a.Participants)
	}
	return total
}

// startMetricsUpdater starts a background goroutine that refreshes registry gauges
func (s *MemStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

// updateMetrics refreshes catalog and per-activity roster gauges
func (s *MemStore) updateMetrics() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, name := range s.order {
		a := s.byName[name]
		size := len(a.Participants)
		total += size

		metrics.UpdateRosterSize(a.Name, size)
		if a.MaxParticipants > 0 {
			metrics.UpdateRosterUtilization(a.Name, float64(size)/float64(a.MaxParticipants))
		}
	}

	metrics.UpdateActivityCount(len(s.byName))
	metrics.UpdateParticipantsTotal(total)
}

// latencyMs reports elapsed time since start in milliseconds.
func latencyMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}
