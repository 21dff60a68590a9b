// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mergington/activities/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Activities returns the full catalog keyed by activity name.
	Activities(ctx context.Context) (map[string]ActivityDetails, error)

	// Activity returns a single activity by name.
	Activity(ctx context.Context, name string) (ActivityDetails, error)

	// Signup adds a student to an activity roster.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes a student from an activity roster.
	Unregister(ctx context.Context, name, email string) error

	// RecentChanges returns the most recent roster changes, newest first.
	RecentChanges(ctx context.Context, n int) ([]RosterChange, error)
}

// ActivityDetails mirrors the read shape returned by catalog queries.
type ActivityDetails = types.ActivityDetails

// RosterChange mirrors the read shape returned by audit queries.
type RosterChange = types.RosterChange

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	rosterHandler     *RosterHandler
	auditHandler      *AuditHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxAuditLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
		rosterHandler:     NewRosterHandler(deps),
		auditHandler:      NewAuditHandler(deps, maxAuditLimit),
		dashboardHandler:  newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/audit", MetricsMiddleware(s.auditHandler.HandleGetAudit, "audit"))
	mux.HandleFunc("/activities", MetricsMiddleware(s.activitiesHandler.HandleGetActivities, "activities"))
	mux.HandleFunc("/activities/", MetricsMiddleware(s.rosterHandler.HandleRoster, "roster"))
}

// messageResponse mirrors the confirmation shape for roster changes.
type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	detail := http.StatusText(status)
	if err != nil {
		detail = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Detail: detail})
}
