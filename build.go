package grits

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/goliatone/go-grits/pkg/contextstore"
	"github.com/goliatone/go-grits/pkg/render"
	"github.com/goliatone/go-grits/pkg/render/template/gotemplate"
)

// BuildConfig describes a single build invocation.
type BuildConfig struct {
	SourceDir   string
	OutputDir   string
	TemplateDir string

	// Store supplies the render context. Defaults to DefaultStore(); the
	// "default" and "user" views are composed in that order.
	Store *contextstore.Store

	// Engine overrides the template whitespace defaults.
	Engine *gotemplate.EngineOptions

	// BinarySuffixes replaces render.DefaultBinarySuffixes when non-empty.
	BinarySuffixes []string

	// DisablePretty writes .html renders exactly as the templates produce them.
	DisablePretty bool

	// Ignore lists source-relative files that are not dispatched.
	Ignore []string

	Logger *slog.Logger
}

// Build renders the scaffolding and then every file of cfg.SourceDir into
// cfg.OutputDir. The first failure aborts the build.
func Build(ctx context.Context, cfg BuildConfig) (render.Stats, error) {
	if cfg.SourceDir == "" {
		return render.Stats{}, errors.New("grits: source directory is required")
	}
	if cfg.OutputDir == "" {
		return render.Stats{}, errors.New("grits: output directory is required")
	}

	src, err := filepath.Abs(cfg.SourceDir)
	if err != nil {
		return render.Stats{}, fmt.Errorf("grits: resolve source dir: %w", err)
	}
	out, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return render.Stats{}, fmt.Errorf("grits: resolve output dir: %w", err)
	}

	store := cfg.Store
	if store == nil {
		store = DefaultStore()
	}
	view, err := UserContext(store)
	if err != nil {
		return render.Stats{}, fmt.Errorf("grits: compose context: %w", err)
	}

	engine, err := NewEnvironment(EnvironmentConfig{
		TemplateDir: cfg.TemplateDir,
		SourceDir:   src,
		Engine:      cfg.Engine,
	})
	if err != nil {
		return render.Stats{}, fmt.Errorf("grits: template environment: %w", err)
	}

	options := []render.Option{
		render.WithSourceDir(src),
		render.WithPretty(!cfg.DisablePretty),
		render.WithIgnore(cfg.Ignore...),
		render.WithLogger(cfg.Logger),
	}
	if len(cfg.BinarySuffixes) > 0 {
		options = append(options, render.WithBinarySuffixes(cfg.BinarySuffixes...))
	}

	renderer, err := render.New(engine, view, out, options...)
	if err != nil {
		return render.Stats{}, err
	}
	return renderer.Process(ctx, nil)
}
