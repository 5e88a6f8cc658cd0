// Package extract decomposes authored HTML fragments into the regions a page
// layout needs (head, main, top-level scripts) and pretty-prints rendered
// documents.
//
// Parsing is lenient. The tree is built straight from the
// golang.org/x/net/html tokenizer rather than the HTML5 tree-construction
// algorithm: nothing is synthesised (no implicit <html>, <head> or <body>),
// duplicate elements survive so they can be reported, stray end tags are
// dropped, and unclosed elements are closed at end of input. Only script,
// style, textarea, title and plaintext keep their contents as raw text; the
// contents of iframe, noembed, noframes, noscript and xmp are parsed as
// markup. One newline directly after <pre>, <listing> or <textarea> is
// dropped, matching what html.Render writes back. The resulting
// nodes are ordinary *html.Node values and serialise with html.Render.
package extract
