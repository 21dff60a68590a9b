// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ActivitiesDependencies defines the interface for catalog queries.
type ActivitiesDependencies interface {
	Activities(ctx context.Context) (map[string]ActivityDetails, error)
}

// ActivitiesHandler handles catalog requests.
type ActivitiesHandler struct {
	deps ActivitiesDependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivitiesDependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleGetActivities handles GET /activities requests.
func (h *ActivitiesHandler) HandleGetActivities(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_activities"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	activities, err := h.deps.Activities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
