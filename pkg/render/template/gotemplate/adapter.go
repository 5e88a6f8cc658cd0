package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-grits/pkg/render/template"
)

// ErrTemplateNotFound is returned when a template name does not resolve in any
// of the engine's search roots.
var ErrTemplateNotFound = errors.New("gotemplate: template not found")

// EngineOptions is the pass-through bag of engine whitespace settings.
type EngineOptions struct {
	// TrimBlocks removes the first newline after a block tag.
	TrimBlocks bool `json:"trim_blocks" yaml:"trim_blocks"`

	// LStripBlocks strips spaces and tabs from the start of a line up to a
	// block tag.
	LStripBlocks bool `json:"lstrip_blocks" yaml:"lstrip_blocks"`
}

// DefaultEngineOptions trims and strips block whitespace so control
// constructs do not leave blank lines in rendered output.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{TrimBlocks: true, LStripBlocks: true}
}

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	roots      []root
	errs       []error
	options    EngineOptions
	templateFn map[string]any
}

// WithSearchDirs appends directories on disk to the search path, in order.
// Empty entries are ignored so optional directories can be passed through.
func WithSearchDirs(dirs ...string) Option {
	return func(cfg *config) {
		for _, dir := range dirs {
			dir = strings.TrimSpace(dir)
			if dir == "" {
				continue
			}
			info, err := os.Stat(dir)
			if err != nil {
				cfg.errs = append(cfg.errs, fmt.Errorf("gotemplate: search dir %q: %w", dir, err))
				continue
			}
			if !info.IsDir() {
				cfg.errs = append(cfg.errs, fmt.Errorf("gotemplate: search dir %q is not a directory", dir))
				continue
			}
			cfg.roots = append(cfg.roots, root{name: dir, fsys: os.DirFS(dir)})
		}
	}
}

// WithFS appends an fs.FS to the search path. name only identifies the root in
// Lookup results and error messages.
func WithFS(name string, files fs.FS) Option {
	return func(cfg *config) {
		if files == nil {
			return
		}
		cfg.roots = append(cfg.roots, root{name: name, fsys: files})
	}
}

// WithEngineOptions replaces the whitespace options wholesale.
func WithEngineOptions(opts EngineOptions) Option {
	return func(cfg *config) {
		cfg.options = opts
	}
}

// WithTrimBlocks toggles removal of the newline after block tags.
func WithTrimBlocks(enabled bool) Option {
	return func(cfg *config) {
		cfg.options.TrimBlocks = enabled
	}
}

// WithLStripBlocks toggles stripping of leading whitespace before block tags.
func WithLStripBlocks(enabled bool) Option {
	return func(cfg *config) {
		cfg.options.LStripBlocks = enabled
	}
}

// WithTemplateFunc registers helper functions or filters when the engine loads.
// Values of type pongo2.FilterFunction become filters, other functions become
// globals of the engine's template set.
func WithTemplateFunc(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFn == nil {
			cfg.templateFn = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFn[strings.TrimSpace(name)] = fn
		}
	}
}

// Engine satisfies template.TemplateRenderer using a pongo2 template set whose
// loaders are tried in search-path order.
type Engine struct {
	mu sync.RWMutex

	roots       []root
	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
}

// Ensure Engine implements the TemplateRenderer interface.
var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		options:    DefaultEngineOptions(),
		templateFn: defaultFuncs(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if err := errors.Join(cfg.errs...); err != nil {
		return nil, err
	}
	if len(cfg.roots) == 0 {
		return nil, errors.New("gotemplate: need at least one search dir or fs.FS")
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(cfg.roots))
	for _, r := range cfg.roots {
		loaders = append(loaders, &rootLoader{fsys: r.fsys})
	}

	set := pongo2.NewSet("grits", loaders...)
	set.Options.TrimBlocks = cfg.options.TrimBlocks
	set.Options.LStripBlocks = cfg.options.LStripBlocks

	engine := &Engine{
		roots:       cfg.roots,
		templateSet: set,
		templates:   make(map[string]*pongo2.Template),
	}
	for name, fn := range cfg.templateFn {
		if err := engine.registerTemplateFunc(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register template func %q: %w", name, err)
		}
	}

	return engine, nil
}

// SearchPath returns the names of the search roots, highest priority first.
func (e *Engine) SearchPath() []string {
	names := make([]string, 0, len(e.roots))
	for _, r := range e.roots {
		names = append(names, r.name)
	}
	return names
}

// Lookup reports which search root a template name resolves to.
func (e *Engine) Lookup(name string) (string, bool) {
	p := cleanName(name)
	for _, r := range e.roots {
		info, err := fs.Stat(r.fsys, p)
		if err == nil && !info.IsDir() {
			return r.name, true
		}
	}
	return "", false
}

// RenderTemplate resolves the named template across the search path and
// evaluates it against data.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.getTemplate(name)
	if err != nil {
		return "", err
	}

	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", name, err)
	}

	return writeOut(buf.String(), out)
}

// RenderString parses templateContent and evaluates it against data.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("gotemplate: engine is nil")
	}

	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}

	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template string: %w", err)
	}

	return writeOut(buf.String(), out)
}

func (e *Engine) registerTemplateFunc(name string, fn any) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || fn == nil {
		return nil
	}

	if filter, ok := fn.(pongo2.FilterFunction); ok {
		if pongo2.FilterExists(trimmed) {
			return nil
		}
		return pongo2.RegisterFilter(trimmed, filter)
	}

	if !isCallable(fn) {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals[trimmed] = fn
	return nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	if _, ok := e.Lookup(path); !ok {
		return nil, fmt.Errorf("%w: %q (search path %s)", ErrTemplateNotFound, path, strings.Join(e.SearchPath(), ", "))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(cleanName(path))
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

func writeOut(rendered string, out []io.Writer) (string, error) {
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func isCallable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && rv.Kind() == reflect.Func
}

// convertToContext accepts any string-keyed map (including named map types
// such as contextstore.Snapshot) and passes values through untouched so lists
// and functions stay callable from templates. Structs are flattened through
// JSON.
func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return maps.Clone(v), nil
	case map[string]any:
		return pongo2.Context(maps.Clone(v)), nil
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(pongo2.Context, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, nil
	}

	m, err := jsonToMap(data)
	if err != nil {
		return nil, err
	}
	return pongo2.Context(m), nil
}

func jsonToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
