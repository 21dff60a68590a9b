// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
)

// defaultAuditLimit is used when no limit query parameter is given.
const defaultAuditLimit = 20

// AuditDependencies defines the interface for audit queries.
type AuditDependencies interface {
	RecentChanges(ctx context.Context, n int) ([]RosterChange, error)
}

// AuditHandler handles audit trail requests.
type AuditHandler struct {
	deps     AuditDependencies
	maxLimit int
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(deps AuditDependencies, maxLimit int) *AuditHandler {
	return &AuditHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetAudit handles GET /audit?limit=N requests.
func (h *AuditHandler) HandleGetAudit(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_audit"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
		return
	}
	n := defaultAuditLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		n, err = strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	changes, err := h.deps.RecentChanges(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, changes)
}
