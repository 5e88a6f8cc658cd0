// Package grits builds static single-page sites from a tree of HTML
// fragments and assets.
//
// Every HTML page is decomposed into its head, main and top-level script
// regions and rendered twice: once through the full layout (__full.html) for
// direct visits and once through the partial layout (__partial.html), written
// under "_/", for client-side navigation. Binaries are copied verbatim and
// every other file is evaluated as a template against a layered context.
//
// Quick start:
//
//	stats, err := grits.Build(ctx, grits.BuildConfig{
//		SourceDir: "site",
//		OutputDir: "public",
//	})
//
// Built-in layouts and the client runtime ship embedded; a template directory
// (or the source tree itself) can override any of them by name.
package grits
