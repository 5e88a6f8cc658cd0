package gotemplate

import (
	"encoding/json"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-grits/pkg/extract"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// defaultFuncs are the grits filters every engine registers on construction.
// pongo2 keeps filters in a process-wide registry, so the first engine wins.
func defaultFuncs() map[string]any {
	return map[string]any{
		"extract_tag":      pongo2.FilterFunction(filterExtractTag),
		"strip_tag":        pongo2.FilterFunction(filterStripTag),
		"tojson":           pongo2.FilterFunction(filterToJSON),
		"sanitize":         pongo2.FilterFunction(filterSanitize),
		"striptags_strict": pongo2.FilterFunction(filterStripTagsStrict),
	}
}

// {{ fragment|extract_tag:"script" }} keeps only the top-level <script>
// elements of fragment.
func filterExtractTag(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, err := extract.Tag(in.String(), param.String(), false)
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:extract_tag", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

// {{ fragment|strip_tag:"script" }} keeps every top-level element except
// <script>.
func filterStripTag(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	out, err := extract.Tag(in.String(), param.String(), true)
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:strip_tag", OrigError: err}
	}
	return pongo2.AsSafeValue(out), nil
}

func filterToJSON(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	data, err := json.Marshal(in.Interface())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:tojson", OrigError: err}
	}
	return pongo2.AsSafeValue(string(data)), nil
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(ugcPolicy.Sanitize(in.String())), nil
}

func filterStripTagsStrict(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(strictPolicy.Sanitize(in.String())), nil
}
