package tools

import (
	"testing"

	"github.com/statepath/workflow/core"
)

func articleSpec() *core.Spec {
	r := core.NewRegistry()
	return r.Define("article", func(w *core.Builder) {
		w.Doc("Article review workflow.")
		w.State("new", func(s *core.StateScope) {
			s.Doc("Freshly written.")
			s.Meta("index", 0)
			s.Event("submit", "awaiting_review",
				core.WithMeta("doc", "author submits"))
		})
		w.State("awaiting_review", func(s *core.StateScope) {
			s.Event("review", "being_reviewed")
		})
		w.State("being_reviewed", func(s *core.StateScope) {
			s.Event("accept", "accepted",
				core.WithActionSource("goja", `halt("never!");`))
			s.Event("reject", "rejected")
		})
		w.State("accepted", nil)
		w.State("rejected", nil)
	})
}

func TestAnalyzeClean(t *testing.T) {
	a, err := Analyze(articleSpec())
	if err != nil {
		t.Fatal(err)
	}
	if !a.OK() {
		t.Fatalf("errors %v", a.Errors)
	}
	if a.StateCount != 5 {
		t.Fatalf("states %d", a.StateCount)
	}
	if a.EventCount != 4 {
		t.Fatalf("events %d", a.EventCount)
	}
	if a.Actions != 1 {
		t.Fatalf("actions %d", a.Actions)
	}
	if len(a.TerminalStates) != 2 {
		t.Fatalf("terminal %v", a.TerminalStates)
	}
	if len(a.Interpreters) != 1 || a.Interpreters[0] != "goja" {
		t.Fatalf("interpreters %v", a.Interpreters)
	}
	if 0 != len(a.Orphans) {
		t.Fatalf("orphans %v", a.Orphans)
	}
}

func TestAnalyzeDefects(t *testing.T) {
	r := core.NewRegistry()
	spec := r.Define("broken", func(w *core.Builder) {
		w.State("a", func(s *core.StateScope) {
			s.Event("jump", "nowhere")
			s.Event("stall", "")
		})
		w.State("island", nil)
	})

	a, err := Analyze(spec)
	if err != nil {
		t.Fatal(err)
	}
	if a.OK() {
		t.Fatal("expected errors")
	}
	if len(a.MissingTargets) != 1 || a.MissingTargets[0] != "nowhere" {
		t.Fatalf("missing %v", a.MissingTargets)
	}
	if len(a.EmptyTargets) != 1 || a.EmptyTargets[0] != "a.stall" {
		t.Fatalf("empty %v", a.EmptyTargets)
	}
	if len(a.Orphans) != 1 || a.Orphans[0] != "island" {
		t.Fatalf("orphans %v", a.Orphans)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	a, err := Analyze(&core.Spec{Name: "void"})
	if err != nil {
		t.Fatal(err)
	}
	if a.OK() {
		t.Fatal("an empty spec should not analyze clean")
	}
}
