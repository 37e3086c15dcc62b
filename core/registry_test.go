package core

import (
	"context"
	"testing"
)

func TestRegisterMerge(t *testing.T) {
	r := NewRegistry()

	first := &Spec{
		Name: "door",
		States: []*State{
			{
				Name: "open",
				Events: []*Event{
					{Name: "close", Target: "closed"},
				},
			},
			{Name: "closed"},
		},
	}
	got := r.Register(first)
	if got != first {
		t.Fatal("first Register should install the given spec")
	}

	second := &Spec{
		Name: "door",
		States: []*State{
			{
				Name: "closed",
				Events: []*Event{
					{Name: "open", Target: "open"},
					{Name: "lock", Target: "locked"},
				},
			},
			{
				Name: "locked",
				Events: []*Event{
					{Name: "unlock", Target: "closed"},
				},
			},
		},
	}
	got = r.Register(second)
	if got != first {
		t.Fatal("second Register should merge into the existing spec")
	}

	if names := got.StateNames(); len(names) != 3 ||
		names[0] != "open" || names[1] != "closed" || names[2] != "locked" {
		t.Fatalf("states %v", names)
	}
	if got.InitialState() != "open" {
		t.Fatalf("initial state %s", got.InitialState())
	}

	// The merged spec actually runs.
	ctx := context.Background()
	in := NewInstance(got)
	for _, event := range []string{"close", "lock", "unlock", "open"} {
		if _, err := in.Fire(ctx, event); err != nil {
			t.Fatalf("fire %s: %v", event, err)
		}
	}
	if in.CurrentState() != "open" {
		t.Fatalf("state %s", in.CurrentState())
	}
}

func TestMergeReplacesEvent(t *testing.T) {
	base := &Spec{
		Name: "door",
		States: []*State{
			{
				Name: "open",
				Events: []*Event{
					{Name: "close", Target: "nowhere"},
					{Name: "slam", Target: "closed"},
				},
			},
			{Name: "closed"},
		},
	}
	base.Merge(&Spec{
		Name: "door",
		States: []*State{
			{
				Name: "open",
				Events: []*Event{
					{Name: "close", Target: "closed"},
				},
			},
		},
	})

	open := base.State("open")
	if names := open.EventNames(); len(names) != 2 ||
		names[0] != "close" || names[1] != "slam" {
		t.Fatalf("events %v", names)
	}
	if open.Event("close").Target != "closed" {
		t.Fatalf("target %s", open.Event("close").Target)
	}
}
