package extract_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-grits/pkg/extract"
)

func TestPrettify(t *testing.T) {
	src := `<!DOCTYPE html><html><head><title>T</title><style>a { color: red; }</style></head>` +
		`<body>  <main id="m"><p>Hi</p><br></main><script>if (a < b) {}</script></body></html>`

	got, err := extract.Prettify(src)
	if err != nil {
		t.Fatalf("prettify: %v", err)
	}

	want := `<!DOCTYPE html>
<html>
 <head>
  <title>
   T
  </title>
  <style>a { color: red; }</style>
 </head>
 <body>
  <main id="m">
   <p>
    Hi
   </p>
   <br>
  </main>
  <script>if (a < b) {}</script>
 </body>
</html>
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("prettify mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettify_IsStable(t *testing.T) {
	once, err := extract.Prettify(`<div><span>a</span> b <!-- c --></div>`)
	if err != nil {
		t.Fatalf("prettify: %v", err)
	}
	twice, err := extract.Prettify(once)
	if err != nil {
		t.Fatalf("prettify again: %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("prettify not idempotent (-first +second):\n%s", diff)
	}
}

func TestPrettify_PreformattedText(t *testing.T) {
	src := "<main><pre>\ncode\n</pre><textarea>\nvalue</textarea></main>"

	once, err := extract.Prettify(src)
	if err != nil {
		t.Fatalf("prettify: %v", err)
	}
	want := "<main>\n <pre>code\n</pre>\n <textarea>value</textarea>\n</main>\n"
	if diff := cmp.Diff(want, once); diff != "" {
		t.Fatalf("prettify mismatch (-want +got):\n%s", diff)
	}

	twice, err := extract.Prettify(once)
	if err != nil {
		t.Fatalf("prettify again: %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("prettify not idempotent (-first +second):\n%s", diff)
	}
}

func TestTag(t *testing.T) {
	fragment := `<script>a()</script><p>keep</p>text<script>b()</script>`

	only, err := extract.Tag(fragment, "script", false)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	if diff := cmp.Diff("<script>a()</script>\n<script>b()</script>", only); diff != "" {
		t.Fatalf("extract mismatch (-want +got):\n%s", diff)
	}

	rest, err := extract.Tag(fragment, "script", true)
	if err != nil {
		t.Fatalf("tag invert: %v", err)
	}
	if rest != "<p>keep</p>" {
		t.Fatalf("unexpected inverted result %q", rest)
	}
}
