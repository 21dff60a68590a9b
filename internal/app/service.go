// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mergington/activities/internal/adapters/audit/recorder"
	"github.com/mergington/activities/internal/adapters/audit/trail"
	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/internal/domain/types"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultTrailSize   = 1024
	defaultHistorySize = 256
)

// Service implements the API dependencies for the activity signup system.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry     repository.Registry
	auditTrail   trail.Trail
	auditHistory recorder.Recorder

	// Configuration
	catalog     []model.Activity
	trailSize   int
	historySize int

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCatalog sets the activity catalog seeded at startup. When unset the
// built-in default catalog is used.
func WithCatalog(catalog []model.Activity) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithTrailSize sets the capacity of the roster change audit trail.
func WithTrailSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.trailSize = size
		}
	}
}

// WithHistorySize sets how many recent roster changes are retained.
func WithHistorySize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.historySize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		trailSize:   defaultTrailSize,
		historySize: defaultHistorySize,
		stopCh:      make(chan struct{}),
		logger:      nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting activities service...")

	// Initialize components
	s.registry = repository.NewMemStore(ctx,
		repository.WithCatalog(s.catalog),
	)
	s.auditTrail = trail.NewInMemoryTrail(
		trail.WithCapacity(s.trailSize),
		trail.WithBufferSize(s.trailSize),
	)

	// Create and start the audit history recorder
	rec := recorder.NewInMemoryRecorder(s.auditTrail,
		recorder.WithHistorySize(s.historySize),
	)
	s.auditHistory = rec
	go rec.Run(ctx)

	s.started = true
	s.logger.Info(ctx, "activities service started",
		logger.Int("activities", s.registry.Count(ctx)),
		logger.Int("participants", s.registry.ParticipantCount(ctx)),
		logger.Int("trailSize", s.trailSize),
		logger.Int("historySize", s.historySize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping activities service...")

	// Close the trail so the recorder can drain what is buffered
	if s.auditTrail != nil {
		_ = s.auditTrail.Close()
	}

	// Wait for the recorder to finish draining
	if s.auditHistory != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.auditHistory.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(context.Background(), "audit recorder shutdown", logger.Error(err))
		}
	}

	// Close the registry
	if s.registry != nil {
		if closer, ok := s.registry.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	// Signal cleanup loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "activities service stopped")
}

// Activities returns every activity keyed by name.
func (s *Service) Activities(ctx context.Context) (map[string]types.ActivityDetails, error) {
	activities, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	// Convert to API format
	out := make(map[string]types.ActivityDetails, len(activities))
	for _, a := range activities {
		out[a.Name] = toDetails(a)
	}

	return out, nil
}

// Activity returns the details for a single activity.
func (s *Service) Activity(ctx context.Context, name string) (types.ActivityDetails, error) {
	a, err := s.registry.Get(ctx, name)
	if err != nil {
		return types.ActivityDetails{}, err
	}

	return toDetails(a), nil
}

// Signup adds a student to an activity roster and records the change.
func (s *Service) Signup(ctx context.Context, activity, email string) error {
	if err := s.registry.Signup(ctx, activity, email); err != nil {
		if errors.Is(err, repository.ErrAlreadySignedUp) {
			metrics.RecordSignupConflict()
		}
		return err
	}

	metrics.RecordSignup()
	s.recordChange(ctx, model.ActionSignup, activity, email)

	s.logger.Debug(ctx, "student signed up",
		logger.String("activity", activity),
		logger.String("email", email),
	)

	return nil
}

// Unregister removes a student from an activity roster and records the change.
func (s *Service) Unregister(ctx context.Context, activity, email string) error {
	if err := s.registry.Unregister(ctx, activity, email); err != nil {
		if errors.Is(err, repository.ErrNotRegistered) {
			metrics.RecordUnregisterConflict()
		}
		return err
	}

	metrics.RecordUnregistration()
	s.recordChange(ctx, model.ActionUnregister, activity, email)

	s.logger.Debug(ctx, "student unregistered",
		logger.String("activity", activity),
		logger.String("email", email),
	)

	return nil
}

// RecentChanges returns up to n recorded roster changes, newest first.
func (s *Service) RecentChanges(ctx context.Context, n int) ([]types.RosterChange, error) {
	changes := s.auditHistory.Recent(ctx, n)

	// Convert to API format
	out := make([]types.RosterChange, len(changes))
	for i, c := range changes {
		out[i] = types.RosterChange{
			ID:       c.ID,
			Action:   c.Action,
			Activity: c.Activity,
			Email:    c.Email,
			At:       c.At,
		}
	}

	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"trailSize":   s.trailSize,
		"historySize": s.historySize,
	}

	if s.started {
		activityCount := s.registry.Count(ctx)
		participantCount := s.registry.ParticipantCount(ctx)
		pendingChanges := s.auditTrail.Len(ctx)
		retainedChanges := s.auditHistory.Len(ctx)

		stats["activities"] = activityCount
		stats["participants"] = participantCount
		stats["pendingChanges"] = pendingChanges
		stats["retainedChanges"] = retainedChanges

		// Update metrics
		metrics.UpdateActivityCount(activityCount)
		metrics.UpdateParticipantsTotal(participantCount)
		metrics.UpdateAuditTrailSize(pendingChanges)
		metrics.UpdateAuditHistorySize(retainedChanges)
	}

	return stats
}

// recordChange puts a roster change on the audit trail, best effort.
func (s *Service) recordChange(ctx context.Context, action, activity, email string) {
	change := model.RosterChange{
		ID:       uuid.NewString(),
		Action:   action,
		Activity: activity,
		Email:    email,
		At:       time.Now().UTC(),
	}

	if !s.auditTrail.Record(ctx, change) {
		s.logger.Warn(ctx, "audit trail did not accept change",
			logger.String("action", action),
			logger.String("activity", activity),
			logger.String("email", email),
		)
	}
}

// toDetails converts a domain activity to its API representation.
func toDetails(a model.Activity) types.ActivityDetails {
	return types.ActivityDetails{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    a.Participants,
	}
}
