// Package template defines the engine-agnostic seam between the renderer and
// whatever template engine resolves and evaluates named templates.
package template
