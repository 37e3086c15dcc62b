package goja

import (
	"context"
	"errors"
	"testing"

	"github.com/statepath/workflow/core"
)

func scriptedSpec(t *testing.T, src string) *core.Spec {
	t.Helper()
	r := core.NewRegistry()
	spec := r.Define("scripted", func(w *core.Builder) {
		w.State("a", func(s *core.StateScope) {
			s.Event("go", "b",
				core.WithActionSource("goja", src),
				core.WithMeta("channel", "email"))
		})
		w.State("b", nil)
	})
	if err := spec.Compile(context.Background(), map[string]core.Interpreter{"goja": NewInterpreter()}, false); err != nil {
		t.Fatal(err)
	}
	return spec
}

func TestExecMutatesArgs(t *testing.T) {
	spec := scriptedSpec(t, `
_.args[0].touched = _.event + ":" + _.from + "->" + _.to;
`)
	in := core.NewInstance(spec)
	box := map[string]interface{}{}
	o, err := in.Fire(context.Background(), "go", box)
	if err != nil {
		t.Fatal(err)
	}
	if !o.Applied {
		t.Fatal("not applied")
	}
	if box["touched"] != "go:a->b" {
		t.Fatalf("box %v", box)
	}
}

func TestExecHalt(t *testing.T) {
	spec := scriptedSpec(t, `
halt("coz I said so!");
_.args[0].unreached = true;
`)
	in := core.NewInstance(spec)
	box := map[string]interface{}{}
	o, err := in.Fire(context.Background(), "go", box)
	if err != nil {
		t.Fatal(err)
	}
	if o.Applied || !o.Halted {
		t.Fatalf("outcome %#v", o)
	}
	if !in.Halted() || in.HaltedBecause() != "coz I said so!" {
		t.Fatalf("halted=%v because=%q", in.Halted(), in.HaltedBecause())
	}
	if !in.Is("a") {
		t.Fatalf("at %s", in.CurrentState())
	}
	// halt() stops the script immediately.
	if _, have := box["unreached"]; have {
		t.Fatal("script ran past halt()")
	}
}

func TestExecHaltNoReason(t *testing.T) {
	spec := scriptedSpec(t, `halt();`)
	in := core.NewInstance(spec)
	if _, err := in.Fire(context.Background(), "go"); err != nil {
		t.Fatal(err)
	}
	if !in.Halted() || in.HaltedBecause() != "" {
		t.Fatalf("halted=%v because=%q", in.Halted(), in.HaltedBecause())
	}
}

func TestExecMeta(t *testing.T) {
	spec := scriptedSpec(t, `
if (_.meta.channel !== "email") {
	halt("wrong meta");
}
`)
	in := core.NewInstance(spec)
	if _, err := in.Fire(context.Background(), "go"); err != nil {
		t.Fatal(err)
	}
	if in.Halted() {
		t.Fatalf("halted: %s", in.HaltedBecause())
	}
}

func TestExecBadSource(t *testing.T) {
	i := NewInterpreter()
	if _, err := i.Compile(context.Background(), 42); err == nil {
		t.Fatal("expected an error")
	}
	if _, err := i.Compile(context.Background(), "this is not javascript ((("); err == nil {
		t.Fatal("expected a compile error")
	}
}

func TestExecScriptError(t *testing.T) {
	spec := scriptedSpec(t, `throw new Error("busted");`)
	in := core.NewInstance(spec)
	_, err := in.Fire(context.Background(), "go")
	if err == nil {
		t.Fatal("expected an error")
	}
	var halt *core.HaltError
	if errors.As(err, &halt) {
		t.Fatal("a script error is not a halt")
	}
	if !in.Is("a") {
		t.Fatalf("at %s", in.CurrentState())
	}
}
