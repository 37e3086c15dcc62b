package core

import (
	"context"
	"testing"
)

var blatterYAML = []byte(`
name: Blatter
doc: |
  Doors open and close.
states:
  - name: opened
    meta:
      - color: green
      - index: 0
    events:
      - name: close
        to: closed
        meta:
          - doc: shut the door
  - name: closed
    events:
      - name: open
        to: opened
`)

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec(blatterYAML)
	if err != nil {
		t.Fatal(err)
	}

	if spec.Name != "Blatter" {
		t.Fatalf("name %s", spec.Name)
	}
	if spec.InitialState() != "opened" {
		t.Fatalf("initial %s", spec.InitialState())
	}
	names := spec.StateNames()
	if len(names) != 2 || names[0] != "opened" || names[1] != "closed" {
		t.Fatalf("states %v", names)
	}

	opened := spec.State("opened")
	keys := opened.Meta.Keys()
	if len(keys) != 2 || keys[0] != "color" || keys[1] != "index" {
		t.Fatalf("meta keys %v", keys)
	}

	closeEvent := opened.Event("close")
	if closeEvent == nil || closeEvent.Target != "closed" {
		t.Fatalf("close %#v", closeEvent)
	}
	if closeEvent.Meta.Get("doc") != "shut the door" {
		t.Fatalf("event meta %v", closeEvent.Meta.Get("doc"))
	}

	in := NewInstance(spec)
	ctx := context.Background()
	if _, err := in.Fire(ctx, "close"); err != nil {
		t.Fatal(err)
	}
	if _, err := in.Fire(ctx, "open"); err != nil {
		t.Fatal(err)
	}
	if !in.Is("opened") {
		t.Fatalf("at %s", in.CurrentState())
	}
}

// recordingInterpreter notes compiles and execs.
type recordingInterpreter struct {
	compiled int
	execed   []string
}

func (i *recordingInterpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	i.compiled++
	return code, nil
}

func (i *recordingInterpreter) Exec(ctx context.Context, t *Transition, code, compiled interface{}) error {
	i.execed = append(i.execed, t.Event.Name)
	return nil
}

func TestParseSpecActionSources(t *testing.T) {
	bs := []byte(`
name: scripted
states:
  - name: a
    onExit:
      interpreter: test
      source: "bye"
    events:
      - name: go
        to: b
        action:
          interpreter: test
          source: "hello"
  - name: b
    onEntry:
      interpreter: test
      source: "hi"
`)
	spec, err := ParseSpec(bs)
	if err != nil {
		t.Fatal(err)
	}

	e := spec.State("a").Event("go")
	if e.ActionSource == nil || e.ActionSource.Interpreter != "test" {
		t.Fatalf("action source %#v", e.ActionSource)
	}

	// Firing before Compile is an authoring error.
	in := NewInstance(spec)
	if _, err := in.Fire(context.Background(), "go"); err == nil {
		t.Fatal("expected UncompiledAction")
	}

	interp := &recordingInterpreter{}
	ctx := context.Background()
	if err := spec.Compile(ctx, map[string]Interpreter{"test": interp}, false); err != nil {
		t.Fatal(err)
	}
	if interp.compiled != 3 {
		t.Fatalf("compiled %d sources", interp.compiled)
	}

	if _, err := in.Fire(ctx, "go"); err != nil {
		t.Fatal(err)
	}
	if !in.Is("b") {
		t.Fatalf("at %s", in.CurrentState())
	}
	// Action, exit hook, entry hook all went through the interpreter.
	if len(interp.execed) != 3 {
		t.Fatalf("execed %v", interp.execed)
	}
}

func TestCompileInterpreterNotFound(t *testing.T) {
	src := &ActionSource{Interpreter: "missing", Source: "x"}
	if _, err := src.Compile(context.Background(), map[string]Interpreter{}); err != InterpreterNotFound {
		t.Fatalf("unexpected error %v", err)
	}
}
