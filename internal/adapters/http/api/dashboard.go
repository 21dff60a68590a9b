// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"io"
	"net/http"
)

// dashboardHandler serves the roster operations dashboard.
type dashboardHandler struct{}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests. The embedded page polls
// /healthz and charts signup, roster and runtime gauges client side.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// http.ServeFileFS requires go >= 1.22; the build toolchain is go 1.21,
	// so serve the embedded file through http.ServeContent instead.
	f, err := dashboardFS.Open("dashboard.html")
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, "dashboard.html", info.ModTime(), rs)
}
