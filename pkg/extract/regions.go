package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

var (
	// ErrDuplicateHead is returned when a page has more than one <head>.
	ErrDuplicateHead = errors.New("html must have at most 1 <head> section")

	// ErrMainCount is returned when a page does not have exactly one <main>.
	ErrMainCount = errors.New("html must have exactly 1 <main> section")
)

// Context keys the extracted regions are published under.
const (
	KeyHead    = "head"
	KeyMain    = "main"
	KeyScripts = "scripts"
)

// Regions holds the serialised parts of a page fragment.
type Regions struct {
	// Head is the inner HTML of the page's <head>. Only meaningful when
	// HasHead is true.
	Head    string
	HasHead bool

	// Main is the inner HTML of the page's single <main>.
	Main string

	// Scripts is every top-level <script>, pretty-printed and joined with
	// newlines. Scripts nested in other elements (including <main>) are
	// left where they are.
	Scripts string
}

// Extract parses src and pulls out its regions.
func Extract(src []byte) (Regions, error) {
	doc, err := Parse(bytes.NewReader(src))
	if err != nil {
		return Regions{}, err
	}
	return FromDocument(doc)
}

// FromDocument pulls the regions out of an already parsed document.
func FromDocument(doc *html.Node) (Regions, error) {
	var regions Regions

	heads := FindAll(doc, "head", true)
	if len(heads) > 1 {
		return Regions{}, fmt.Errorf("%w (found %d)", ErrDuplicateHead, len(heads))
	}
	if len(heads) == 1 {
		head, err := InnerHTML(heads[0])
		if err != nil {
			return Regions{}, err
		}
		regions.Head = head
		regions.HasHead = true
	}

	mains := FindAll(doc, "main", true)
	if len(mains) != 1 {
		return Regions{}, fmt.Errorf("%w (found %d)", ErrMainCount, len(mains))
	}
	content, err := InnerHTML(mains[0])
	if err != nil {
		return Regions{}, err
	}
	regions.Main = content

	scripts := FindAll(doc, "script", false)
	parts := make([]string, 0, len(scripts))
	for _, script := range scripts {
		parts = append(parts, PrettifyNode(script))
	}
	regions.Scripts = strings.Join(parts, "\n")

	return regions, nil
}

// Values returns the regions keyed for a render context. An absent head is
// published as nil so templates can test for it.
func (r Regions) Values() map[string]any {
	var head any
	if r.HasHead {
		head = r.Head
	}
	return map[string]any{
		KeyHead:    head,
		KeyMain:    r.Main,
		KeyScripts: r.Scripts,
	}
}
