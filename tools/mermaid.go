/* Copyright 2024 Statepath Authors
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"fmt"
	"io"

	"github.com/statepath/workflow/core"
)

type MermaidOpts struct {
	// ShowActions marks events that carry actions with a trailing
	// asterisk on the edge label.
	ShowActions bool `json:"showActions"`

	// ActionFill is the fill color for states whose events carry
	// actions.
	ActionFill string `json:"actionFill,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given spec.
func Mermaid(spec *core.Spec, w io.Writer, opts *MermaidOpts, fromState, toState string) error {

	if opts == nil {
		opts = &MermaidOpts{
			ShowActions: true,
			ActionFill:  "#bcf2db",
		}
	}

	fmt.Fprintf(w, "graph TB\n")

	nids := make(map[string]string)
	num := 0
	node := func(name string) string {
		if nid, already := nids[name]; already {
			return nid
		}
		num++
		nid := fmt.Sprintf("n%d", num)
		nids[name] = nid
		if st := spec.State(name); st != nil && st.Terminal() {
			fmt.Fprintf(w, "  %s(\"%s\")\n", nid, name)
		} else {
			fmt.Fprintf(w, "  %s[\"%s\"]\n", nid, name)
		}
		return nid
	}

	for _, st := range spec.States {
		nid := node(st.Name)
		for _, e := range st.Events {
			to := node(e.Target)
			label := e.Name
			if opts.ShowActions && (e.Action != nil || e.ActionSource != nil) {
				label += "*"
			}
			fmt.Fprintf(w, "  %s -- \"%s\" --> %s\n", nid, label, to)
		}
	}

	fmt.Fprintf(w, "\n")

	return nil
}
