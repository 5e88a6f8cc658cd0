package template

import (
	"io"
)

// TemplateRenderer is the contract the build pipeline needs from a template
// engine: look a template up by name across the engine's search roots and
// evaluate it against a data mapping. The gotemplate package provides the
// pongo2-backed implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
