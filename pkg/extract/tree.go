package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

// elements that drop a newline directly after their start tag
var newlineElements = map[string]struct{}{
	"pre": {}, "listing": {}, "textarea": {},
}

// raw-text elements whose contents are parsed as markup
var markupElements = map[string]struct{}{
	"iframe": {}, "noembed": {}, "noframes": {}, "noscript": {}, "xmp": {},
}

// Parse reads r into a document node using tag-soup rules. It only fails when
// the underlying reader fails.
func Parse(r io.Reader) (*html.Node, error) {
	doc := &html.Node{Type: html.DocumentNode}
	stack := []*html.Node{doc}
	z := html.NewTokenizer(r)

	for {
		tt := z.Next()
		top := stack[len(stack)-1]

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("extract: tokenize: %w", err)
			}
			return doc, nil

		case html.TextToken:
			data := z.Token().Data
			if top.Type != html.ElementNode {
				top.AppendChild(&html.Node{Type: html.TextNode, Data: data})
				break
			}
			if _, ok := markupElements[top.Data]; ok {
				if err := appendFragment(top, data); err != nil {
					return nil, err
				}
				break
			}
			if _, ok := newlineElements[top.Data]; ok && top.FirstChild == nil {
				data = strings.TrimPrefix(data, "\n")
				if data == "" {
					break
				}
			}
			top.AppendChild(&html.Node{Type: html.TextNode, Data: data})

		case html.CommentToken:
			top.AppendChild(&html.Node{Type: html.CommentNode, Data: z.Token().Data})

		case html.DoctypeToken:
			top.AppendChild(&html.Node{Type: html.DoctypeNode, Data: z.Token().Data})

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			node := &html.Node{
				Type:     html.ElementNode,
				Data:     tok.Data,
				DataAtom: tok.DataAtom,
				Attr:     tok.Attr,
			}
			top.AppendChild(node)
			if tt == html.StartTagToken && !isVoid(tok.Data) {
				stack = append(stack, node)
			}

		case html.EndTagToken:
			name := z.Token().Data
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Data == name {
					stack = stack[:i]
					break
				}
			}
		}
	}
}

func appendFragment(parent *html.Node, markup string) error {
	frag, err := ParseString(markup)
	if err != nil {
		return err
	}
	for c := frag.FirstChild; c != nil; c = frag.FirstChild {
		frag.RemoveChild(c)
		parent.AppendChild(c)
	}
	return nil
}

// ParseString is Parse over a string.
func ParseString(doc string) (*html.Node, error) {
	return Parse(strings.NewReader(doc))
}

// FindAll returns every element named tag below n in document order. When
// recursive is false only direct children are considered.
func FindAll(n *html.Node, tag string, recursive bool) []*html.Node {
	var out []*html.Node
	a := atom.Lookup([]byte(tag))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && matches(c, tag, a) {
			out = append(out, c)
		}
		if recursive {
			out = append(out, FindAll(c, tag, true)...)
		}
	}
	return out
}

// InnerHTML serialises the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("extract: render <%s> contents: %w", n.Data, err)
		}
	}
	return buf.String(), nil
}

// OuterHTML serialises n itself.
func OuterHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("extract: render <%s>: %w", n.Data, err)
	}
	return buf.String(), nil
}

func matches(n *html.Node, tag string, a atom.Atom) bool {
	if a != 0 && n.DataAtom != 0 {
		return n.DataAtom == a
	}
	return n.Data == tag
}

func isVoid(tag string) bool {
	_, ok := voidElements[tag]
	return ok
}
