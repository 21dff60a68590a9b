// Package site handles the embedded student portal.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("portal serve failed")
)

// Register attaches the embedded student portal routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded portal at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}

// RootHandler handles root path requests
type RootHandler struct{}

// NewRootHandler creates a new root handler
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests and serves the embedded student portal
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	// Serve the portal index page
	files := http.FileServer(FS())
	files.ServeHTTP(w, r)
}
