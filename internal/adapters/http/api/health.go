// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/mergington/activities/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	prom http.Handler
}

// NewHealthHandler creates a new health handler. The Prometheus handler is
// built once here rather than per request.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		prom: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests by serving the Prometheus
// metrics of the custom registry. A 200 response doubles as liveness.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.prom.ServeHTTP(w, r)
}
