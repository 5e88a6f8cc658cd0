package gotemplate_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-grits/pkg/render/template/gotemplate"
)

func builtinFS() fstest.MapFS {
	return fstest.MapFS{
		"__full.html":    {Data: []byte(`builtin full {{ main }}`)},
		"__partial.html": {Data: []byte(`builtin partial {{ main }}`)},
		"inc/child.txt":  {Data: []byte(`{% include "shared.txt" %}`)},
		"shared.txt":     {Data: []byte(`shared from builtin`)},
	}
}

func TestEngine_SearchOrderPrefersEarlierRoots(t *testing.T) {
	user := t.TempDir()
	if err := os.WriteFile(filepath.Join(user, "__full.html"), []byte(`user full {{ main }}`), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	engine, err := gotemplate.New(
		gotemplate.WithSearchDirs(user),
		gotemplate.WithFS("builtin", builtinFS()),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	full, err := engine.RenderTemplate("__full.html", map[string]any{"main": "x"})
	if err != nil {
		t.Fatalf("render full: %v", err)
	}
	if full != "user full x" {
		t.Fatalf("expected user override, got %q", full)
	}

	partial, err := engine.RenderTemplate("__partial.html", map[string]any{"main": "x"})
	if err != nil {
		t.Fatalf("render partial: %v", err)
	}
	if partial != "builtin partial x" {
		t.Fatalf("expected builtin fallback, got %q", partial)
	}

	if where, ok := engine.Lookup("__full.html"); !ok || where != user {
		t.Fatalf("expected lookup in %q, got %q (ok=%v)", user, where, ok)
	}
}

func TestEngine_IncludeResolvesFromSearchRoot(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS("builtin", builtinFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderTemplate("inc/child.txt", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "shared from builtin" {
		t.Fatalf("unexpected include output %q", out)
	}
}

func TestEngine_TemplateNotFound(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS("builtin", builtinFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	_, err = engine.RenderTemplate("missing.html", nil)
	if !errors.Is(err, gotemplate.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestEngine_RequiresARoot(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without search roots")
	}
	if _, err := gotemplate.New(gotemplate.WithSearchDirs(filepath.Join(t.TempDir(), "nope"))); err == nil {
		t.Fatalf("expected error for missing search dir")
	}
}

func TestEngine_BlockWhitespaceOptions(t *testing.T) {
	files := fstest.MapFS{
		"list.txt": {Data: []byte("{% for item in items %}\n  {{ item }}\n{% endfor %}\n")},
	}
	data := map[string]any{"items": []string{"a", "b"}}

	trimmed, err := gotemplate.New(gotemplate.WithFS("t", files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := trimmed.RenderTemplate("list.txt", data)
	if err != nil {
		t.Fatalf("render trimmed: %v", err)
	}
	if out != "  a\n  b\n" {
		t.Fatalf("unexpected trimmed output %q", out)
	}

	raw, err := gotemplate.New(
		gotemplate.WithFS("t", files),
		gotemplate.WithEngineOptions(gotemplate.EngineOptions{}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err = raw.RenderTemplate("list.txt", data)
	if err != nil {
		t.Fatalf("render raw: %v", err)
	}
	if !strings.HasPrefix(out, "\n") {
		t.Fatalf("expected untrimmed output to keep block newlines, got %q", out)
	}
}

func TestEngine_FiltersAndFunctions(t *testing.T) {
	engine, err := gotemplate.New(
		gotemplate.WithFS("t", fstest.MapFS{}),
		gotemplate.WithTemplateFunc(map[string]any{
			"shout": func(s string) string { return strings.ToUpper(s) },
			"grits_test_suffix": pongo2.FilterFunction(func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
				return pongo2.AsValue(in.String() + param.String()), nil
			}),
		}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	tests := []struct {
		name string
		tmpl string
		data map[string]any
		want string
	}{
		{name: "tojson", tmpl: `{{ pages|tojson }}`, data: map[string]any{"pages": []string{"/_/a.html"}}, want: `["/_/a.html"]`},
		{name: "extract_tag", tmpl: `{{ body|extract_tag:"script" }}`, data: map[string]any{"body": `<p>x</p><script>a()</script>`}, want: `<script>a()</script>`},
		{name: "strip_tag", tmpl: `{{ body|strip_tag:"script" }}`, data: map[string]any{"body": `<p>x</p><script>a()</script>`}, want: `<p>x</p>`},
		{name: "sanitize", tmpl: `{{ body|sanitize }}`, data: map[string]any{"body": `<b>ok</b><script>bad()</script>`}, want: `<b>ok</b>`},
		{name: "striptags_strict", tmpl: `{{ body|striptags_strict }}`, data: map[string]any{"body": `<b>ok</b>`}, want: `ok`},
		{name: "global func", tmpl: `{{ shout("hi") }}`, want: `HI`},
		{name: "custom filter", tmpl: `{{ "a"|grits_test_suffix:"b" }}`, want: `ab`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			out, err := engine.RenderString(tt.tmpl, tt.data, &buf)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if out != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, out)
			}
			if buf.String() != out {
				t.Fatalf("writer received %q, returned %q", buf.String(), out)
			}
		})
	}
}

type namedMap map[string]any

func TestEngine_AcceptsNamedMapTypes(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS("t", fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.RenderString(`{{ page_filename }}`, namedMap{"page_filename": "index.html"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "index.html" {
		t.Fatalf("unexpected output %q", out)
	}
}
