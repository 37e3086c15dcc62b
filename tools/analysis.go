package tools

import (
	"fmt"
	"sort"

	"github.com/statepath/workflow/core"
)

// SpecAnalysis reports structural facts (and suspected defects) about
// a specification: dangling event targets, unreachable states, and so
// on.  Firing an event whose target is missing fails at runtime, so
// authors should run Analyze before shipping a spec.
type SpecAnalysis struct {
	spec *core.Spec

	Errors         []string `json:"errors,omitempty"`
	StateCount     int      `json:"states"`
	EventCount     int      `json:"events"`
	Actions        int      `json:"actions"`
	ScriptedHooks  int      `json:"scriptedHooks"`
	TerminalStates []string `json:"terminalStates,omitempty"`
	Orphans        []string `json:"orphans,omitempty"`
	EmptyTargets   []string `json:"emptyTargets,omitempty"`
	MissingTargets []string `json:"missingTargets,omitempty"`
	Interpreters   []string `json:"interpreters,omitempty"`
}

// Analyze scrutinizes the spec.
func Analyze(s *core.Spec) (*SpecAnalysis, error) {
	a := SpecAnalysis{
		spec:       s,
		StateCount: len(s.States),
		Errors:     make([]string, 0, 8),
	}

	targeted := make(map[string]bool)
	interpreters := make(map[string]bool)
	missing := make(map[string]bool)

	for _, st := range s.States {
		if st.Terminal() {
			a.TerminalStates = append(a.TerminalStates, st.Name)
		}
		if st.EntrySource != nil {
			a.ScriptedHooks++
			interpreters[st.EntrySource.Interpreter] = true
		}
		if st.ExitSource != nil {
			a.ScriptedHooks++
			interpreters[st.ExitSource.Interpreter] = true
		}
		for _, e := range st.Events {
			a.EventCount++
			if e.Action != nil || e.ActionSource != nil {
				a.Actions++
				if e.ActionSource != nil {
					interpreters[e.ActionSource.Interpreter] = true
				}
			}
			if e.Target == "" {
				a.EmptyTargets = append(a.EmptyTargets,
					st.Name+"."+e.Name)
				continue
			}
			targeted[e.Target] = true
			if nil == s.State(e.Target) {
				missing[e.Target] = true
			}
		}
	}

	// The initial state needs no inbound event.
	for i, st := range s.States {
		if 0 == i {
			continue
		}
		if !targeted[st.Name] {
			a.Orphans = append(a.Orphans, st.Name)
		}
	}

	a.MissingTargets = keys(missing)
	a.Interpreters = keys(interpreters)

	for _, name := range a.MissingTargets {
		a.Errors = append(a.Errors,
			fmt.Sprintf(`target "%s" is not a declared state`, name))
	}
	for _, ref := range a.EmptyTargets {
		a.Errors = append(a.Errors,
			fmt.Sprintf(`event %s has an empty target`, ref))
	}
	if 0 == a.StateCount {
		a.Errors = append(a.Errors, "spec has no states")
	}

	return &a, nil
}

// OK reports whether the analysis found no errors.
func (a *SpecAnalysis) OK() bool {
	return 0 == len(a.Errors)
}

func keys(set map[string]bool) []string {
	acc := make([]string, 0, len(set))
	for k := range set {
		acc = append(acc, k)
	}
	sort.Strings(acc)
	return acc
}
