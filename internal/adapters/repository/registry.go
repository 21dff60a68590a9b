// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Registry provides read/write access to the activity catalog.
type Registry interface {
	// List returns every activity in catalog order.
	List(ctx context.Context) ([]model.Activity, error)

	// Get returns a single activity by name.
	// Returns ErrActivityNotFound if the activity is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup adds a student email to the named activity's roster.
	// Returns ErrActivityNotFound if the activity is unknown and
	// ErrAlreadySignedUp if the email is already on the roster.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes a student email from the named activity's roster.
	// Returns ErrActivityNotFound if the activity is unknown and
	// ErrNotRegistered if the email is not on the roster.
	Unregister(ctx context.Context, name, email string) error

	// Count returns the number of activities in the catalog.
	Count(ctx context.Context) int

	// ParticipantCount returns the number of roster entries across all activities.
	ParticipantCount(ctx context.Context) int
}
