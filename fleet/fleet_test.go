package fleet

import (
	"context"
	"testing"

	"github.com/statepath/workflow/core"
)

func ticketSpec(r *core.Registry) *core.Spec {
	return r.Define("ticket", func(w *core.Builder) {
		w.State("open", func(s *core.StateScope) {
			s.Event("resolve", "resolved")
		})
		w.State("resolved", func(s *core.StateScope) {
			s.Event("reopen", "open")
		})
	})
}

func TestRegistryProvider(t *testing.T) {
	r := core.NewRegistry()
	spec := ticketSpec(r)
	p := &RegistryProvider{Registry: r}

	ctx := context.Background()

	found, err := p.FindSpec(ctx, NewSpecSource("ticket"))
	if err != nil {
		t.Fatal(err)
	}
	if found != spec {
		t.Fatal("wrong spec")
	}

	inline := &core.Spec{Name: "inline"}
	found, err = p.FindSpec(ctx, &SpecSource{Inline: inline})
	if err != nil {
		t.Fatal(err)
	}
	if found != inline {
		t.Fatal("inline spec not returned")
	}

	if _, err = p.FindSpec(ctx, NewSpecSource("nope")); err == nil {
		t.Fatal("expected an error")
	}
	if _, err = p.FindSpec(ctx, nil); err == nil {
		t.Fatal("expected an error")
	}
}

func TestFleet(t *testing.T) {
	r := core.NewRegistry()
	spec := ticketSpec(r)

	f := NewFleet("support")
	m := &Machine{
		Id:         "t-1",
		SpecSource: NewSpecSource("ticket"),
		Instance:   core.NewInstance(spec),
	}
	f.Add(m)

	got, have := f.Get("t-1")
	if !have || got != m {
		t.Fatal("machine not found")
	}

	c := f.Copy()
	if len(c.Machines) != 1 {
		t.Fatalf("copy has %d machines", len(c.Machines))
	}

	if !f.Remove("t-1") {
		t.Fatal("remove failed")
	}
	if _, have := f.Get("t-1"); have {
		t.Fatal("machine still there")
	}
	if f.Remove("t-1") {
		t.Fatal("second remove should report false")
	}
}

func TestJSONStore(t *testing.T) {
	dir := t.TempDir()
	filename := dir + "/state.json"

	s := NewJSONStore()
	s.StateOutputFilename = filename
	s.Update([]*MachineState{
		{Mid: "t-1", SpecSource: NewSpecSource("ticket"), StateName: "resolved"},
		{Mid: "t-2", SpecSource: NewSpecSource("ticket"), StateName: "open"},
	})
	s.Update([]*MachineState{
		{Mid: "t-2", Deleted: true},
	})
	if err := s.WriteState(context.Background()); err != nil {
		t.Fatal(err)
	}

	back := NewJSONStore()
	back.StateInputFilename = filename
	state, err := back.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(state) != 1 {
		t.Fatalf("state %v", state)
	}
	if state["t-1"].StateName != "resolved" {
		t.Fatalf("t-1 at %s", state["t-1"].StateName)
	}
}
