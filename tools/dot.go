package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"strings"

	"github.com/statepath/workflow/core"

	"gopkg.in/yaml.v2"
)

// Dot makes a Graphviz dot file for the given spec.
//
// The optional fromState and toState can be names of states during a
// transition.  If non-zero, the fromState will be black and the
// toState will be red.
func Dot(spec *core.Spec, w io.Writer, fromState, toState string) error {

	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=TB,nodesep=0.3,ranksep=0.6]
  node [shape="record" style="rounded,filled"]
  edge [fontsize = "12"]
`)

	for _, st := range spec.States {
		label := st.Name
		if st.Doc != "" {
			doc := st.Doc
			if 40 < len(doc) {
				period := strings.Index(doc, ". ")
				if 0 < period {
					doc = doc[0 : period+1]
				}
			}
			label += "<BR/><FONT POINT-SIZE='8'>" + doc + "</FONT>"
		}
		if 0 < st.Meta.Len() {
			bs, err := yaml.Marshal(st.Meta.Map())
			if err != nil {
				return err
			}
			meta := strings.Replace(string(bs), "<", `&lt;`, -1)
			meta = strings.Replace(meta, ">", `&gt;`, -1)
			label += `<FONT POINT-SIZE="6"><BR/>` +
				strings.Replace(meta, "\n", `<BR ALIGN="LEFT"/>`, -1) +
				`</FONT>`
		}

		fillcolor := "#99ddc8"
		color := "black"
		style := "filled"
		if st.Name == spec.InitialState() {
			style += ",bold"
		}
		if st.Terminal() {
			style += ",dashed"
			fillcolor = "#52aa5e"
		}
		if toState == st.Name {
			color = "red"
			fillcolor = "#f98b8b"
		}

		fmt.Fprintf(w, "  %s [shape=\"record\", style=\"%s\", color=\"%s\", fillcolor=\"%s\", label=<%s> ]\n",
			st.Name, style, color, fillcolor, label)
	}

	for _, st := range spec.States {
		for _, e := range st.Events {
			attrs := fmt.Sprintf("label=\"%s\"", e.Name)
			if e.Action != nil || e.ActionSource != nil {
				attrs += ", style=\"dashed\""
			}
			fmt.Fprintf(w, "  %s -> %s [%s]\n", st.Name, e.Target, attrs)
		}
	}

	fmt.Fprintf(w, "}\n")

	return nil
}
