package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/goliatone/go-grits/pkg/contextstore"
	"github.com/goliatone/go-grits/pkg/render/template"
)

// Reserved template names and context keys.
const (
	FullTemplate    = "__full.html"
	PartialTemplate = "__partial.html"

	// PartialDir is the output subdirectory holding partial renders.
	PartialDir = "_"

	KeyPageFilename = "page_filename"
	KeyPages        = "pages"
	KeyJSFiles      = "js_files"
	KeyCSSFiles     = "css_files"
)

// ContextSource provides the default render context. *contextstore.Store
// and *contextstore.View both satisfy it.
type ContextSource interface {
	Snapshot() contextstore.Snapshot
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithSourceDir sets the directory Process walks and that Render reads pages
// and binaries from when a Request does not name one.
func WithSourceDir(dir string) Option {
	return func(r *Renderer) {
		r.srcDir = dir
	}
}

// WithBinarySuffixes replaces the binary predicate with a suffix match.
func WithBinarySuffixes(suffixes ...string) Option {
	return func(r *Renderer) {
		r.isBinary = SuffixPredicate(suffixes...)
	}
}

// WithBinaryPredicate installs a custom binary predicate.
func WithBinaryPredicate(fn BinaryPredicate) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.isBinary = fn
		}
	}
}

// WithPretty toggles pretty-printing of rendered .html templates. Enabled by
// default.
func WithPretty(enabled bool) Option {
	return func(r *Renderer) {
		r.pretty = enabled
	}
}

// WithIgnore excludes source-relative paths from Process.
func WithIgnore(names ...string) Option {
	return func(r *Renderer) {
		for _, name := range names {
			if name == "" {
				continue
			}
			r.ignore[filepath.ToSlash(name)] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for per-file and summary output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer materialises source files into an output directory. It is not safe
// for concurrent use; a build drives it from a single goroutine.
type Renderer struct {
	templates template.TemplateRenderer
	source    ContextSource
	outDir    string
	srcDir    string
	isBinary  BinaryPredicate
	pretty    bool
	ignore    map[string]struct{}
	logger    *slog.Logger

	outReady bool
}

// New constructs a Renderer bound to a template engine, a context source and
// an output directory. The output directory is created on first write.
func New(templates template.TemplateRenderer, source ContextSource, outDir string, options ...Option) (*Renderer, error) {
	if templates == nil {
		return nil, errors.New("render: template renderer is required")
	}
	if source == nil {
		return nil, errors.New("render: context source is required")
	}
	if outDir == "" {
		return nil, errors.New("render: output directory is required")
	}

	r := &Renderer{
		templates: templates,
		source:    source,
		outDir:    outDir,
		isBinary:  SuffixPredicate(DefaultBinarySuffixes...),
		pretty:    true,
		ignore:    make(map[string]struct{}),
		logger:    slog.New(noopHandler{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// OutDir returns the output root.
func (r *Renderer) OutDir() string {
	return r.outDir
}

// Request describes a single Render call.
type Request struct {
	// Name is the source path relative to SrcDir, using forward slashes. For
	// template assets it is also the template name.
	Name string

	// Dest is the output path relative to the output root. Defaults to Name.
	Dest string

	// SrcDir overrides the renderer's source directory for this call.
	SrcDir string

	// Data is the render context. When nil a fresh snapshot is taken from the
	// renderer's ContextSource. Render may add and remove transient keys while
	// it runs but leaves Data as it found it.
	Data contextstore.Snapshot
}

// Render classifies req.Name and materialises it under the output root.
func (r *Renderer) Render(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Name == "" {
		return errors.New("render: name is required")
	}

	dst := req.Dest
	if dst == "" {
		dst = req.Name
	}
	data := req.Data
	if data == nil {
		data = r.source.Snapshot()
	}

	kind := r.Classify(req.Name)
	r.logger.Debug("render", "name", req.Name, "dst", dst, "kind", kind.String())

	switch kind {
	case KindBinary:
		src, err := r.sourcePath(req)
		if err != nil {
			return err
		}
		return r.copyFile(src, dst)

	case KindHTMLPage:
		src, err := r.sourcePath(req)
		if err != nil {
			return err
		}
		restore := data.Temporary(KeyPageFilename, req.Name)
		defer restore()
		return r.renderPage(src, dst, data)

	default:
		if err := r.renderTemplate(req.Name, dst, data); err != nil {
			return fmt.Errorf("render: %s: %w", req.Name, err)
		}
		return nil
	}
}

func (r *Renderer) sourcePath(req Request) (string, error) {
	dir := req.SrcDir
	if dir == "" {
		dir = r.srcDir
	}
	if dir == "" {
		return "", fmt.Errorf("render: %s: source directory is required", req.Name)
	}
	return filepath.Join(dir, filepath.FromSlash(req.Name)), nil
}
