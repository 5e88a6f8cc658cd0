package render

import (
	"path"
	"strings"
)

// Kind is the closed set of ways a source file can be materialised.
type Kind int

const (
	// KindTemplateAsset is evaluated as a named template.
	KindTemplateAsset Kind = iota
	// KindBinary is copied verbatim.
	KindBinary
	// KindHTMLPage is decomposed and rendered as full and partial pages.
	KindHTMLPage
)

func (k Kind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindHTMLPage:
		return "html"
	default:
		return "template"
	}
}

// DefaultBinarySuffixes are copied without template evaluation.
var DefaultBinarySuffixes = []string{".gif", ".img", ".ico", ".jpeg", ".jpg", ".png"}

// BinaryPredicate reports whether a source name must be copied verbatim.
type BinaryPredicate func(name string) bool

// SuffixPredicate matches names by extension, case-insensitively. Suffixes
// may be given with or without the leading dot.
func SuffixPredicate(suffixes ...string) BinaryPredicate {
	set := make(map[string]struct{}, len(suffixes))
	for _, suffix := range suffixes {
		suffix = strings.ToLower(strings.TrimSpace(suffix))
		if suffix == "" {
			continue
		}
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		set[suffix] = struct{}{}
	}
	return func(name string) bool {
		_, ok := set[strings.ToLower(path.Ext(name))]
		return ok
	}
}

// Classify decides how name is materialised. Binary matches win over the
// .html suffix.
func (r *Renderer) Classify(name string) Kind {
	switch {
	case r.isBinary(name):
		return KindBinary
	case path.Ext(name) == ".html":
		return KindHTMLPage
	default:
		return KindTemplateAsset
	}
}
