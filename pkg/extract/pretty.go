package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// elements whose contents are emitted byte for byte
var verbatimElements = map[string]struct{}{
	"script": {}, "style": {}, "pre": {}, "textarea": {},
	"iframe": {}, "noembed": {}, "noframes": {}, "noscript": {},
	"xmp": {}, "plaintext": {},
}

// Prettify re-serialises doc with one node per line, indenting children by a
// single space per level. Whitespace-only text is dropped and remaining text is
// trimmed; the contents of script, style, pre and textarea are kept as is.
func Prettify(doc string) (string, error) {
	root, err := ParseString(doc)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		writePretty(&b, c, 0)
	}
	return b.String(), nil
}

// PrettifyNode pretty-prints a single node and its subtree.
func PrettifyNode(n *html.Node) string {
	var b strings.Builder
	writePretty(&b, n, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func writePretty(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat(" ", depth)

	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return
		}
		b.WriteString(indent)
		b.WriteString(html.EscapeString(text))
		b.WriteByte('\n')

	case html.CommentNode:
		b.WriteString(indent)
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->\n")

	case html.DoctypeNode:
		b.WriteString(indent)
		b.WriteString("<!DOCTYPE ")
		b.WriteString(n.Data)
		b.WriteString(">\n")

	case html.ElementNode:
		if _, ok := verbatimElements[n.Data]; ok {
			out, err := OuterHTML(n)
			if err == nil {
				b.WriteString(indent)
				b.WriteString(out)
				b.WriteByte('\n')
				return
			}
		}

		b.WriteString(indent)
		writeStartTag(b, n)
		b.WriteByte('\n')
		if isVoid(n.Data) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writePretty(b, c, depth+1)
		}
		b.WriteString(indent)
		b.WriteString("</")
		b.WriteString(n.Data)
		b.WriteString(">\n")

	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writePretty(b, c, depth)
		}
	}
}

func writeStartTag(b *strings.Builder, n *html.Node) {
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, attr := range n.Attr {
		b.WriteByte(' ')
		if attr.Namespace != "" {
			b.WriteString(attr.Namespace)
			b.WriteByte(':')
		}
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Val))
		b.WriteByte('"')
	}
	b.WriteByte('>')
}
