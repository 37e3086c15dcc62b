package tools

import (
	"bytes"
	"strings"
	"testing"
)

func TestDot(t *testing.T) {
	var buf bytes.Buffer
	if err := Dot(articleSpec(), &buf, "", "accepted"); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"digraph G {",
		"new -> awaiting_review [label=\"submit\"]",
		"being_reviewed -> accepted [label=\"accept\", style=\"dashed\"]",
		"#f98b8b", // the toState highlight
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestMermaid(t *testing.T) {
	var buf bytes.Buffer
	if err := Mermaid(articleSpec(), &buf, nil, "", ""); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "graph TB") {
		t.Fatalf("out:\n%s", out)
	}
	for _, want := range []string{
		`["new"]`,
		`("accepted")`, // terminal states get round corners
		`-- "submit" -->`,
		`-- "accept*" -->`, // action marker
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderSpecHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSpecHTML(articleSpec(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`<code>article</code>`,
		`id="being_reviewed"`,
		`href="#awaiting_review"`,
		"Article review workflow", // markdown-rendered doc
		`<td class="metaKey">index</td>`,
		`halt(&#34;never!&#34;);`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}
