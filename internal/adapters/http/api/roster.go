// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mergington/activities/internal/adapters/repository"
)

// RosterDependencies defines the interface for roster operations.
type RosterDependencies interface {
	Activity(ctx context.Context, name string) (ActivityDetails, error)
	Signup(ctx context.Context, name, email string) error
	Unregister(ctx context.Context, name, email string) error
}

// RosterHandler handles single-activity and roster change requests.
type RosterHandler struct {
	deps RosterDependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// HandleRoster handles requests under /activities/:
//
//	GET  /activities/{name}            -> single activity details
//	POST /activities/{name}/signup     -> add a student to the roster
//	POST /activities/{name}/unregister -> remove a student from the roster
func (h *RosterHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	// Extract path parameter after /activities/
	path := strings.TrimPrefix(r.URL.Path, "/activities/")

	switch {
	case strings.HasSuffix(path, "/signup"):
		h.handleSignup(w, r, strings.TrimSuffix(path, "/signup"))
	case strings.HasSuffix(path, "/unregister"):
		h.handleUnregister(w, r, strings.TrimSuffix(path, "/unregister"))
	default:
		h.handleGetActivity(w, r, path)
	}
}

func (h *RosterHandler) handleGetActivity(w http.ResponseWriter, r *http.Request, name string) {
	const op = "api.get_activity"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, repository.ErrActivityNotFound))
		return
	}
	details, err := h.deps.Activity(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *RosterHandler) handleSignup(w http.ResponseWriter, r *http.Request, name string) {
	const op = "api.signup"
	email, ok := h.changeParams(w, r, op, name)
	if !ok {
		return
	}
	if err := h.deps.Signup(r.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrActivityNotFound):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, repository.ErrAlreadySignedUp):
			writeError(w, http.StatusBadRequest, "already_signed_up", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

func (h *RosterHandler) handleUnregister(w http.ResponseWriter, r *http.Request, name string) {
	const op = "api.unregister"
	email, ok := h.changeParams(w, r, op, name)
	if !ok {
		return
	}
	if err := h.deps.Unregister(r.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrActivityNotFound):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, repository.ErrNotRegistered):
			writeError(w, http.StatusBadRequest, "not_registered", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

// changeParams validates the shared preconditions of signup and unregister
// requests and reports whether the handler should proceed.
func (h *RosterHandler) changeParams(w http.ResponseWriter, r *http.Request, op, name string) (string, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return "", false
	}
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, repository.ErrActivityNotFound))
		return "", false
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrMissingEmail))
		return "", false
	}
	return email, true
}
