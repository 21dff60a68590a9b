package api

import (
	"embed"
	"io/fs"
)

//go:embed static/dashboard.html
var apiStaticFS embed.FS

// dashboardFS re-roots the embedded tree at static/ so the handler can
// address dashboard.html by bare name.
var dashboardFS fs.FS = func() fs.FS {
	sub, err := fs.Sub(apiStaticFS, "static")
	if err != nil {
		return apiStaticFS
	}
	return sub
}()
