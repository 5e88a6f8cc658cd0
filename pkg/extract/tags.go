package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Tag filters the top-level elements of a fragment by name. With invert false
// only elements named tag are kept; with invert true every top-level element
// except those is kept. Kept elements are serialised and joined by newlines.
// Top-level text is discarded either way.
func Tag(fragment, tag string, invert bool) (string, error) {
	root, err := ParseString(fragment)
	if err != nil {
		return "", err
	}

	var parts []string
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if (c.Data == tag) == invert {
			continue
		}
		out, err := OuterHTML(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n"), nil
}
