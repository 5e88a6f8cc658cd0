// Package render turns a source tree of HTML fragments and assets into a
// static site.
//
// Every source file is classified into one of three kinds and materialised
// accordingly:
//
//   - KindBinary: copied byte for byte (images by default).
//   - KindHTMLPage: decomposed into head/main/scripts regions and rendered
//     twice, through "__full.html" to <dst> and through "__partial.html" to
//     "_/<dst>" for client-side navigation.
//   - KindTemplateAsset: evaluated as a named template and written out.
//
// Process renders the scaffolding outputs first (route and prefetch manifests,
// the client runtime and any configured js/css files) and then walks the source
// tree, so a source file with the same destination overwrites the scaffolding
// default.
package render
