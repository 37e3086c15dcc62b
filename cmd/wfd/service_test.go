package main

import (
	"context"
	"os"
	"testing"
)

var articleYAML = `
name: article
states:
  - name: new
    events:
      - name: submit
        to: awaiting_review
  - name: awaiting_review
    events:
      - name: review
        to: being_reviewed
  - name: being_reviewed
    events:
      - name: accept
        to: accepted
        action:
          interpreter: goja
          source: |
            if (_.args.length > 0 && _.args[0].block) {
              halt("coz I said so!");
            }
      - name: reject
        to: rejected
  - name: accepted
  - name: rejected
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/article.yaml", []byte(articleYAML), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := NewService(context.Background(), dir, dir+"/wfd.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func TestServiceOps(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	r := s.Do(ctx, &Op{Op: "specs"})
	if len(r.Specs) != 1 || r.Specs[0] != "article" {
		t.Fatalf("specs %v", r.Specs)
	}

	r = s.Do(ctx, &Op{Op: "create", Id: "m1", Spec: "article"})
	if r.Err != "" {
		t.Fatal(r.Err)
	}
	if r.State != "new" {
		t.Fatalf("state %s", r.State)
	}

	r = s.Do(ctx, &Op{Op: "create", Id: "m1", Spec: "article"})
	if r.Err == "" {
		t.Fatal("duplicate create should fail")
	}

	r = s.Do(ctx, &Op{Op: "fire", Id: "m1", Event: "submit"})
	if r.Err != "" || r.State != "awaiting_review" {
		t.Fatalf("result %#v", r)
	}

	// An undefined event reports the legal ones.
	r = s.Do(ctx, &Op{Op: "fire", Id: "m1", Event: "accept"})
	if r.Err == "" {
		t.Fatal("expected an error")
	}
	if len(r.Legal) != 1 || r.Legal[0] != "review" {
		t.Fatalf("legal %v", r.Legal)
	}

	r = s.Do(ctx, &Op{Op: "fire", Id: "m1", Event: "review"})
	if r.Err != "" || r.State != "being_reviewed" {
		t.Fatalf("result %#v", r)
	}

	// The scripted guard halts when told to.
	r = s.Do(ctx, &Op{Op: "fire", Id: "m1", Event: "accept",
		Args: []interface{}{map[string]interface{}{"block": true}}})
	if r.Err != "" {
		t.Fatal(r.Err)
	}
	if !r.Halted || r.Reason != "coz I said so!" || r.State != "being_reviewed" {
		t.Fatalf("result %#v", r)
	}

	r = s.Do(ctx, &Op{Op: "fire", Id: "m1", Event: "accept",
		Args: []interface{}{map[string]interface{}{}}})
	if r.Err != "" || r.Halted || r.State != "accepted" {
		t.Fatalf("result %#v", r)
	}

	r = s.Do(ctx, &Op{Op: "state", Id: "m1"})
	if r.State != "accepted" || len(r.Legal) != 0 {
		t.Fatalf("result %#v", r)
	}

	r = s.Do(ctx, &Op{Op: "delete", Id: "m1"})
	if r.Err != "" {
		t.Fatal(r.Err)
	}
	r = s.Do(ctx, &Op{Op: "state", Id: "m1"})
	if r.Err == "" {
		t.Fatal("deleted machine still reachable")
	}
}

func TestServiceRestart(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(dir+"/article.yaml", []byte(articleYAML), 0644); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	s, err := NewService(ctx, dir, dir+"/wfd.db")
	if err != nil {
		t.Fatal(err)
	}
	s.Do(ctx, &Op{Op: "create", Id: "m1", Spec: "article"})
	s.Do(ctx, &Op{Op: "fire", Id: "m1", Event: "submit"})
	if err := s.Close(ctx); err != nil {
		t.Fatal(err)
	}

	// A new service over the same db restores the machine.
	s, err = NewService(ctx, dir, dir+"/wfd.db")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)

	r := s.Do(ctx, &Op{Op: "state", Id: "m1"})
	if r.Err != "" || r.State != "awaiting_review" {
		t.Fatalf("result %#v", r)
	}
}
