package grits

import (
	"strings"

	"github.com/goliatone/go-grits/pkg/contextstore"
	"github.com/goliatone/go-grits/pkg/render"
)

// Context view names.
const (
	DefaultView = "default"
	UserView    = "user"
)

// Runtime bundle template names.
const (
	RuntimeScript = "static/vendor/mapp.min.js"
	RequestScript = "static/vendor/rq.min.js"
)

// DefaultStore returns a store with the built-in "default" view followed by an
// empty "user" view, so user values shadow defaults.
func DefaultStore() *contextstore.Store {
	store := contextstore.New()
	store.Declare(DefaultView).Update(map[string]any{
		render.KeyCSSFiles: []string{},
		render.KeyJSFiles:  []string{RuntimeScript},
		"inline_css":       []string{},
		"inline_js":        []string{RequestScript},
		"dynamic_routes":   []string{},
		"static_file":      StaticFile,
	})
	store.Declare(UserView)
	return store
}

// UserContext composes the default and user views of store. Writes through
// the returned view land in the user view.
func UserContext(store *contextstore.Store) (*contextstore.View, error) {
	return store.Include(DefaultView, UserView)
}

// StaticFile turns a root-relative asset name into an absolute URL path,
// appending ".suffix" when the name does not already end with suffix.
func StaticFile(filename, suffix string) string {
	if suffix != "" && !strings.HasSuffix(filename, suffix) {
		filename += "." + suffix
	}
	if !strings.HasPrefix(filename, "/") {
		filename = "/" + filename
	}
	return filename
}
