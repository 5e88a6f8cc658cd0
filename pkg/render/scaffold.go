package render

import (
	"context"
	"fmt"

	"github.com/goliatone/go-grits/pkg/contextstore"
)

// Scaffolding manifests consumed by the client runtime. Their output paths are
// part of the build output contract.
const (
	RoutesManifest   = "_dynamicRoutes.json"
	PrefetchManifest = "_prefetchManifest.json"
)

// ScaffoldingNames lists the scaffolding outputs for data: both manifests,
// then every js_files entry, then every css_files entry.
func ScaffoldingNames(data contextstore.Snapshot) []string {
	names := []string{RoutesManifest, PrefetchManifest}
	names = append(names, data.Strings(KeyJSFiles)...)
	names = append(names, data.Strings(KeyCSSFiles)...)
	return names
}

// RenderScaffolding renders the outputs the client runtime needs regardless
// of page content. A nil data uses a fresh snapshot of the context source.
func (r *Renderer) RenderScaffolding(ctx context.Context, data contextstore.Snapshot) error {
	if data == nil {
		data = r.source.Snapshot()
	}
	for _, name := range ScaffoldingNames(data) {
		if err := r.Render(ctx, Request{Name: name, Data: data}); err != nil {
			return fmt.Errorf("render: scaffolding %s: %w", name, err)
		}
	}
	return nil
}
