// Package server is the development file server for built sites. Extension
// -less paths are rewritten to the matching page, so /about serves
// about.html and /docs serves docs/index.html.
package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// New returns a handler serving root with the page rewrite rule applied.
func New(root string, fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	files := http.FileServer(http.Dir(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if target, ok := Rewrite(root, r.URL.Path); ok {
			opts.Logger.Info("rewrote", "from", r.URL.Path, "to", target)
			r = r.Clone(r.Context())
			r.URL.Path = target
			r.URL.RawPath = ""
		}
		files.ServeHTTP(w, r)
	})
}

// Rewrite maps an extension-less request path onto a page under root: p.html
// when it exists, else p/index.html. Index pages map to their directory URL
// so http.FileServer serves them without its index.html redirect.
func Rewrite(root, p string) (string, bool) {
	if p == "" || strings.HasSuffix(p, "/") {
		return "", false
	}
	clean := path.Clean("/" + p)
	if clean == "/" {
		return "", false
	}
	base := filepath.Join(root, filepath.FromSlash(clean))

	if isFile(base + ".html") {
		if path.Base(clean) == "index" {
			return dirURL(path.Dir(clean)), true
		}
		return clean + ".html", true
	}
	if isFile(filepath.Join(base, "index.html")) {
		return dirURL(clean), true
	}
	return "", false
}

func dirURL(p string) string {
	if strings.HasSuffix(p, "/") {
		return p
	}
	return p + "/"
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}
