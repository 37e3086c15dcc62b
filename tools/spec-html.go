package tools

import (
	"fmt"
	"html"
	"io"

	"github.com/statepath/workflow/core"
	. "github.com/statepath/workflow/util/testutil"

	md "github.com/russross/blackfriday/v2"
)

// RenderSpecHTML writes an HTML documentation fragment for the spec:
// its Doc (as markdown), each state with its meta, and each event with
// its target and meta.
func RenderSpecHTML(s *core.Spec, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="specName"><code>%s</code></div>`, s.Name)
	if s.Doc != "" {
		f(`<div class="specDoc doc">%s</div>`, md.Run([]byte(s.Doc)))
	}

	f(`<div class="states"><table>`)
	for _, st := range s.States {
		f(`<tr class="state"><td><span id="%s" class="stateName">%s</span></td><td>`, st.Name, st.Name)

		if st.Doc != "" {
			f(`<div class="stateDoc doc">%s</div>`, md.Run([]byte(st.Doc)))
		}
		renderMetaHTML(f, st.Meta)

		if 0 < len(st.Events) {
			f(`<div class="events"><table>`)
			for _, e := range st.Events {
				f(`<tr><td><div class="eventName">%s</div></td><td>`, e.Name)
				f(`<table>`)
				if e.Doc != "" {
					f(`<tr><td></td><td>doc</td><td><div class="eventDoc doc">%s</div></td></tr>`,
						md.Run([]byte(e.Doc)))
				}
				f(`<tr><td></td><td>target</td>`)
				f(`<td><a href="#%s"><code>%s</code></a></td></tr>`, e.Target, e.Target)
				if e.ActionSource != nil {
					f(`<tr><td></td><td>action</td>`)
					src := fmt.Sprintf("%s", e.ActionSource.Source)
					f(`<td><div class="code"><pre>%s</pre></div></td></tr>`, html.EscapeString(src))
				}
				f(`</table>`)
				renderMetaHTML(f, e.Meta)
				f(`</td></tr>`)
			}
			f(`</table></div>`)
		}

		f(`</td></tr>`)
	}
	f(`</table></div>`)

	return nil
}

func renderMetaHTML(f func(string, ...interface{}), m *core.Meta) {
	if 0 == m.Len() {
		return
	}
	f(`<div class="meta"><table>`)
	m.Each(func(k string, v interface{}) error {
		f(`<tr><td class="metaKey">%s</td><td><code>%s</code></td></tr>`, k, JS(v))
		return nil
	})
	f(`</table></div>`)
}
