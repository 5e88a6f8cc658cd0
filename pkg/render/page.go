package render

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-grits/pkg/contextstore"
	"github.com/goliatone/go-grits/pkg/extract"
)

// renderPage decomposes the page at src and writes its full and partial
// renders. Nothing is written when the page fails structural validation.
func (r *Renderer) renderPage(src, dst string, data contextstore.Snapshot) error {
	raw, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("render: read page: %w", err)
	}

	regions, err := extract.Extract(raw)
	if err != nil {
		return &PageError{Path: src, Err: err}
	}

	// regions never leak into data; values already in the context win
	page := data.Clone()
	for key, value := range regions.Values() {
		page.SetDefault(key, value)
	}

	if err := r.renderTemplate(FullTemplate, dst, page); err != nil {
		return fmt.Errorf("render: page %s: %w", src, err)
	}
	if err := r.renderTemplate(PartialTemplate, path.Join(PartialDir, dst), page); err != nil {
		return fmt.Errorf("render: page %s: %w", src, err)
	}
	return nil
}

// renderTemplate evaluates a named template and writes the result to dst.
func (r *Renderer) renderTemplate(name, dst string, data contextstore.Snapshot) error {
	rendered, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return err
	}
	if r.pretty && strings.HasSuffix(name, ".html") {
		rendered, err = extract.Prettify(rendered)
		if err != nil {
			return fmt.Errorf("prettify %s: %w", name, err)
		}
	}
	return r.writeFile(dst, strings.NewReader(rendered))
}
