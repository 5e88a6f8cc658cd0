package grits_test

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-grits"
	"github.com/goliatone/go-grits/pkg/extract"
	"github.com/goliatone/go-grits/pkg/render"
	"github.com/goliatone/go-grits/pkg/testsupport"
)

func TestBuild_EndToEnd(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")
	logo := "\x89PNG\r\n\x1a\n\x00\x01{{ raw }}"
	testsupport.WriteTree(t, src, map[string]string{
		"index.html": "<html><head><title>T</title></head><main>Hi</main></html>",
		"logo.png":   logo,
	})

	stats, err := grits.Build(testsupport.Context(), grits.BuildConfig{SourceDir: src, OutputDir: out})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []string{
		"_/index.html",
		"_dynamicRoutes.json",
		"_prefetchManifest.json",
		"index.html",
		"logo.png",
		"static/vendor/mapp.min.js",
	}
	if diff := cmp.Diff(want, testsupport.ListTree(t, out)); diff != "" {
		t.Fatalf("output tree mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(render.Stats{Scaffolding: 3, Pages: 1, Binaries: 1}, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	for _, name := range []string{"index.html", "_/index.html"} {
		page := testsupport.MustReadString(t, out, name)
		if !strings.Contains(page, `<main id="mapp-main">`) {
			t.Fatalf("%s: missing main slot:\n%s", name, page)
		}
		if !strings.Contains(page, "Hi") || !strings.Contains(page, "<title>") || !strings.Contains(page, "T\n") {
			t.Fatalf("%s: missing extracted regions:\n%s", name, page)
		}
	}

	full := testsupport.MustReadString(t, out, "index.html")
	if !strings.HasPrefix(full, "<!DOCTYPE html>\n<html>\n") {
		t.Fatalf("full page not a pretty-printed document:\n%s", full)
	}
	if !strings.Contains(full, `<script src="/static/vendor/mapp.min.js">`) {
		t.Fatalf("full page does not load the runtime:\n%s", full)
	}
	if !strings.Contains(full, "w.rq=") {
		t.Fatalf("full page does not inline the request helper:\n%s", full)
	}

	partial := testsupport.MustReadString(t, out, "_/index.html")
	if strings.Contains(partial, "<html>") {
		t.Fatalf("partial render carries the full layout:\n%s", partial)
	}

	if got := testsupport.MustReadFile(t, out, "logo.png"); !bytes.Equal(got, []byte(logo)) {
		t.Fatalf("logo.png changed: %q", got)
	}
	if got := testsupport.MustReadString(t, out, "_prefetchManifest.json"); strings.TrimSpace(got) != `["/_/index.html"]` {
		t.Fatalf("prefetch manifest = %q", got)
	}
	if got := testsupport.MustReadString(t, out, "_dynamicRoutes.json"); strings.TrimSpace(got) != `[]` {
		t.Fatalf("routes manifest = %q", got)
	}
}

func TestBuild_TemplateDirOverridesBuiltins(t *testing.T) {
	src := t.TempDir()
	tpl := t.TempDir()
	out := t.TempDir()
	testsupport.WriteTree(t, src, map[string]string{"index.html": "<main>Hi</main>"})
	testsupport.WriteTree(t, tpl, map[string]string{
		"__partial.html": `<div class="custom">{{ main|safe }}</div>`,
	})

	_, err := grits.Build(testsupport.Context(), grits.BuildConfig{
		SourceDir:     src,
		OutputDir:     out,
		TemplateDir:   tpl,
		DisablePretty: true,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if got := testsupport.MustReadString(t, out, "_/index.html"); got != `<div class="custom">Hi</div>` {
		t.Fatalf("override not used: %q", got)
	}
	if got := testsupport.MustReadString(t, out, "index.html"); !strings.Contains(got, `<main id="mapp-main">`) {
		t.Fatalf("built-in full layout not used:\n%s", got)
	}
}

func TestBuild_UserViewExtendsDefaults(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testsupport.WriteTree(t, src, map[string]string{
		"index.html":      "<main>Hi</main>",
		"static/site.css": "main { color: {{ accent }}; }",
	})

	store := grits.DefaultStore()
	view, err := grits.UserContext(store)
	if err != nil {
		t.Fatalf("user context: %v", err)
	}
	css := append(view.Snapshot().Strings(render.KeyCSSFiles), "static/site.css")
	view.Update(map[string]any{
		render.KeyCSSFiles: css,
		"accent":           "teal",
	})

	if _, err := grits.Build(testsupport.Context(), grits.BuildConfig{SourceDir: src, OutputDir: out, Store: store}); err != nil {
		t.Fatalf("build: %v", err)
	}

	full := testsupport.MustReadString(t, out, "index.html")
	if !strings.Contains(full, `<link rel="stylesheet" href="/static/site.css">`) {
		t.Fatalf("stylesheet link missing:\n%s", full)
	}
	if got := testsupport.MustReadString(t, out, "static/site.css"); got != "main { color: teal; }" {
		t.Fatalf("css asset = %q", got)
	}
	if defaults, _ := store.MustInclude(grits.DefaultView).Get(render.KeyCSSFiles); len(defaults.([]string)) != 0 {
		t.Fatalf("default view mutated: %v", defaults)
	}
}

func TestBuild_StructuralErrorAborts(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testsupport.WriteTree(t, src, map[string]string{
		"index.html": "<head></head><head></head><main>Hi</main>",
	})

	_, err := grits.Build(testsupport.Context(), grits.BuildConfig{SourceDir: src, OutputDir: out})
	if !errors.Is(err, extract.ErrDuplicateHead) {
		t.Fatalf("expected ErrDuplicateHead, got %v", err)
	}
	if !strings.Contains(err.Error(), filepath.Join(src, "index.html")) {
		t.Fatalf("error does not name the source file: %v", err)
	}
	for _, name := range testsupport.ListTree(t, out) {
		if strings.HasSuffix(name, "index.html") {
			t.Fatalf("page written despite structural error: %s", name)
		}
	}
}

func TestBuild_RequiresDirectories(t *testing.T) {
	if _, err := grits.Build(testsupport.Context(), grits.BuildConfig{OutputDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error without a source dir")
	}
	if _, err := grits.Build(testsupport.Context(), grits.BuildConfig{SourceDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error without an output dir")
	}
}

func TestDefaultStore_UserShadowsDefault(t *testing.T) {
	store := grits.DefaultStore()
	if diff := cmp.Diff([]string{grits.DefaultView, grits.UserView}, store.Names()); diff != "" {
		t.Fatalf("views mismatch (-want +got):\n%s", diff)
	}

	view, err := grits.UserContext(store)
	if err != nil {
		t.Fatalf("user context: %v", err)
	}
	view.Set(render.KeyJSFiles, []string{"static/app.js"})

	snap := view.Snapshot()
	if diff := cmp.Diff([]string{"static/app.js"}, snap.Strings(render.KeyJSFiles)); diff != "" {
		t.Fatalf("js_files mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{grits.RequestScript}, snap.Strings("inline_js")); diff != "" {
		t.Fatalf("inline_js mismatch (-want +got):\n%s", diff)
	}
	if _, ok := snap["static_file"].(func(string, string) string); !ok {
		t.Fatalf("static_file helper missing from context")
	}
}

func TestStaticFile(t *testing.T) {
	tests := []struct {
		name, suffix, want string
	}{
		{"static/site", "css", "/static/site.css"},
		{"static/site.css", "css", "/static/site.css"},
		{"/static/app.js", "js", "/static/app.js"},
		{"static/vendor/mapp.min.js", "js", "/static/vendor/mapp.min.js"},
		{"favicon.ico", "", "/favicon.ico"},
	}
	for _, tt := range tests {
		if got := grits.StaticFile(tt.name, tt.suffix); got != tt.want {
			t.Errorf("StaticFile(%q, %q) = %q, want %q", tt.name, tt.suffix, got, tt.want)
		}
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	fsys := grits.EmbeddedTemplates()
	for _, name := range []string{
		render.FullTemplate,
		render.PartialTemplate,
		render.RoutesManifest,
		render.PrefetchManifest,
		grits.RuntimeScript,
		grits.RequestScript,
	} {
		if _, err := fs.Stat(fsys, name); err != nil {
			t.Fatalf("expected embedded %s: %v", name, err)
		}
	}
}

func TestRuntimeAssetsFS(t *testing.T) {
	data, err := fs.ReadFile(grits.RuntimeAssetsFS(), "mapp.min.js")
	if err != nil {
		t.Fatalf("expected runtime bundle to be readable: %v", err)
	}
	if !strings.Contains(string(data), "/_dynamicRoutes.json") {
		t.Fatalf("runtime bundle does not load the routes manifest")
	}
	if _, err := fs.ReadFile(grits.RuntimeAssetsFS(), "rq.min.js"); err != nil {
		t.Fatalf("expected request helper to be readable: %v", err)
	}
}
