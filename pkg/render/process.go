package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-grits/pkg/contextstore"
)

// Stats summarises a Process run.
type Stats struct {
	Scaffolding int
	Pages       int
	Assets      int
	Binaries    int
}

// Files is the number of source files dispatched by the traversal.
func (s Stats) Files() int {
	return s.Pages + s.Assets + s.Binaries
}

// Process renders the scaffolding and then every file of the source tree, in
// lexical order. Any failure aborts the run.
func (r *Renderer) Process(ctx context.Context, data contextstore.Snapshot) (Stats, error) {
	var stats Stats
	if r.srcDir == "" {
		return stats, errors.New("render: source directory is required")
	}
	if data == nil {
		data = r.source.Snapshot()
	} else {
		data = data.Clone()
	}

	names, err := r.SourceNames()
	if err != nil {
		return stats, err
	}
	data.SetDefault(KeyPages, r.partialURLs(names))

	scaffolding := ScaffoldingNames(data)
	if err := r.RenderScaffolding(ctx, data); err != nil {
		return stats, err
	}
	stats.Scaffolding = len(scaffolding)

	for _, name := range names {
		if err := r.Render(ctx, Request{Name: name, SrcDir: r.srcDir, Data: data}); err != nil {
			return stats, err
		}
		switch r.Classify(name) {
		case KindHTMLPage:
			stats.Pages++
		case KindBinary:
			stats.Binaries++
		default:
			stats.Assets++
		}
	}

	r.logger.Info("build complete",
		"src", r.srcDir,
		"out", r.outDir,
		"pages", stats.Pages,
		"assets", stats.Assets,
		"binaries", stats.Binaries,
		"scaffolding", stats.Scaffolding,
	)
	return stats, nil
}

// SourceNames walks the source directory and returns every regular file as a
// slash-separated path relative to it. Hidden entries, ignored paths and
// root-level layout templates ("__*.html") are skipped.
func (r *Renderer) SourceNames() ([]string, error) {
	var names []string
	err := filepath.WalkDir(r.srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == r.srcDir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(r.srcDir, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if _, skip := r.ignore[name]; skip {
			return nil
		}
		if isLayoutTemplate(name) {
			return nil
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("render: walk %s: %w", r.srcDir, err)
	}
	return names, nil
}

func (r *Renderer) partialURLs(names []string) []string {
	urls := []string{}
	for _, name := range names {
		if r.Classify(name) == KindHTMLPage {
			urls = append(urls, "/"+path.Join(PartialDir, name))
		}
	}
	return urls
}

func isLayoutTemplate(name string) bool {
	return !strings.Contains(name, "/") && strings.HasPrefix(name, "__") && path.Ext(name) == ".html"
}
