package grits

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the built-in layouts, scaffolding manifests and
// client runtime, rooted so names match their template names
// ("__full.html", "static/vendor/mapp.min.js").
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// RuntimeAssetsFS exposes the client runtime bundles (mapp.min.js and
// rq.min.js) so Go applications can serve them outside a build.
//
// Typical mount:
//
//	mux.Handle("/static/vendor/",
//	  http.StripPrefix("/static/vendor/",
//	    http.FileServerFS(grits.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates/static/vendor")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
