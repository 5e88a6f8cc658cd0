package grits

import (
	"io/fs"

	"github.com/goliatone/go-grits/pkg/render/template/gotemplate"
)

// EnvironmentConfig describes the template search path of a build.
type EnvironmentConfig struct {
	// TemplateDir holds user overrides of built-in templates. Optional.
	TemplateDir string

	// SourceDir is searched after TemplateDir so text assets of the source
	// tree resolve as templates by their relative name. Optional.
	SourceDir string

	// Builtins replaces the embedded built-in templates. Mostly for tests.
	Builtins fs.FS

	// Engine overrides the whitespace defaults (trim and lstrip blocks).
	Engine *gotemplate.EngineOptions
}

// NewEnvironment builds the template engine for a build. Names resolve against
// TemplateDir, then SourceDir, then the built-in templates, so any built-in
// can be overridden by placing a file of the same name earlier in the path.
func NewEnvironment(cfg EnvironmentConfig) (*gotemplate.Engine, error) {
	builtins := cfg.Builtins
	if builtins == nil {
		builtins = EmbeddedTemplates()
	}

	options := []gotemplate.Option{
		gotemplate.WithSearchDirs(cfg.TemplateDir, cfg.SourceDir),
		gotemplate.WithFS("builtin", builtins),
	}
	if cfg.Engine != nil {
		options = append(options, gotemplate.WithEngineOptions(*cfg.Engine))
	}
	return gotemplate.New(options...)
}
