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

package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/statepath/workflow/core"
	"github.com/statepath/workflow/fleet"
	"github.com/statepath/workflow/interpreters"
)

// Op is one service operation, read as a JSON line/message.
type Op struct {
	// Op is "create", "fire", "state", "delete", or "specs".
	Op string `json:"op"`

	// Id names the machine for create/fire/state/delete.
	Id string `json:"id,omitempty"`

	// Spec names the specification for create.
	Spec string `json:"spec,omitempty"`

	// Event and Args are for fire.
	Event string        `json:"event,omitempty"`
	Args  []interface{} `json:"args,omitempty"`
}

// Result is the response to one Op.
type Result struct {
	Id      string        `json:"id,omitempty"`
	State   string        `json:"state,omitempty"`
	Halted  bool          `json:"halted,omitempty"`
	Reason  string        `json:"reason,omitempty"`
	Outcome *core.Outcome `json:"outcome,omitempty"`
	Specs   []string      `json:"specs,omitempty"`
	Legal   []string      `json:"legal,omitempty"`
	Err     string        `json:"err,omitempty"`
}

// Service hosts a fleet of machines behind the ops protocol, with
// specs from a directory of YAML documents and states persisted in a
// BoltStore.
type Service struct {
	registry *core.Registry
	provider fleet.SpecProvider
	fleet    *fleet.Fleet
	store    *fleet.BoltStore

	// mu serializes op processing; machines are not safe for
	// concurrent firing.
	mu sync.Mutex
}

// NewService loads the spec directory, opens the store, and rebinds
// any persisted machines.
func NewService(ctx context.Context, specsDir, dbFile string) (*Service, error) {
	registry := core.NewRegistry()

	filenames, err := filepath.Glob(filepath.Join(specsDir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	more, err := filepath.Glob(filepath.Join(specsDir, "*.yml"))
	if err != nil {
		return nil, err
	}
	filenames = append(filenames, more...)

	is := interpreters.Standard()
	for _, filename := range filenames {
		spec, err := core.ReadSpecFile(filename)
		if err != nil {
			return nil, fmt.Errorf("spec %s: %w", filename, err)
		}
		merged := registry.Register(spec)
		if err := merged.Compile(ctx, is, true); err != nil {
			return nil, fmt.Errorf("spec %s: %w", filename, err)
		}
		log.Printf("loaded spec %s from %s", spec.Name, filename)
	}

	s := &Service{
		registry: registry,
		provider: &fleet.RegistryProvider{Registry: registry},
		fleet:    fleet.NewFleet("wfd"),
		store:    fleet.NewBoltStore(dbFile),
	}

	if err := s.store.Open(ctx); err != nil {
		return nil, err
	}

	machines, err := s.store.Load(ctx, s.provider)
	if err != nil {
		return nil, err
	}
	for id, m := range machines {
		s.fleet.Add(m)
		log.Printf("restored machine %s at %s", id, m.Instance.CurrentState())
	}

	return s, nil
}

// Close closes the store.
func (s *Service) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}

// Do processes one op.  Errors are reported in the Result, never
// returned, so a bad op doesn't kill its connection.
func (s *Service) Do(ctx context.Context, op *Op) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch op.Op {
	case "create":
		return s.create(ctx, op)
	case "fire":
		return s.fire(ctx, op)
	case "state":
		return s.state(ctx, op)
	case "delete":
		return s.remove(ctx, op)
	case "specs":
		return &Result{Specs: s.registry.Names()}
	default:
		return &Result{Err: fmt.Sprintf("unknown op %q", op.Op)}
	}
}

func (s *Service) create(ctx context.Context, op *Op) *Result {
	if op.Id == "" || op.Spec == "" {
		return &Result{Err: "create needs an id and a spec"}
	}
	if _, have := s.fleet.Get(op.Id); have {
		return &Result{Id: op.Id, Err: "machine already exists"}
	}

	src := fleet.NewSpecSource(op.Spec)
	spec, err := s.provider.FindSpec(ctx, src)
	if err != nil {
		return &Result{Id: op.Id, Err: err.Error()}
	}

	m := &fleet.Machine{
		Id:         op.Id,
		SpecSource: src,
		Instance:   core.NewInstance(spec),
	}
	s.fleet.Add(m)

	if err := s.store.WriteState(ctx, fleet.StateOf(m)); err != nil {
		return &Result{Id: op.Id, Err: err.Error()}
	}

	return &Result{Id: m.Id, State: m.Instance.CurrentState()}
}

func (s *Service) fire(ctx context.Context, op *Op) *Result {
	m, have := s.fleet.Get(op.Id)
	if !have {
		return &Result{Id: op.Id, Err: "machine not found"}
	}

	o, err := m.Instance.Fire(ctx, op.Event, op.Args...)
	if err != nil {
		r := &Result{Id: op.Id, State: m.Instance.CurrentState(), Err: err.Error()}
		if undefined, is := err.(*core.UndefinedTransition); is {
			r.Legal = undefined.Legal
		}
		return r
	}

	r := &Result{
		Id:      op.Id,
		State:   m.Instance.CurrentState(),
		Halted:  m.Instance.Halted(),
		Reason:  m.Instance.HaltedBecause(),
		Outcome: o,
	}

	if o.Applied {
		if err := s.store.WriteState(ctx, fleet.StateOf(m)); err != nil {
			r.Err = err.Error()
		}
	}

	return r
}

func (s *Service) state(ctx context.Context, op *Op) *Result {
	m, have := s.fleet.Get(op.Id)
	if !have {
		return &Result{Id: op.Id, Err: "machine not found"}
	}
	st := m.Instance.Spec().State(m.Instance.CurrentState())
	r := &Result{
		Id:     op.Id,
		State:  m.Instance.CurrentState(),
		Halted: m.Instance.Halted(),
		Reason: m.Instance.HaltedBecause(),
	}
	if st != nil {
		r.Legal = st.EventNames()
	}
	return r
}

func (s *Service) remove(ctx context.Context, op *Op) *Result {
	if !s.fleet.Remove(op.Id) {
		return &Result{Id: op.Id, Err: "machine not found"}
	}
	err := s.store.WriteState(ctx, &fleet.MachineState{Mid: op.Id, Deleted: true})
	if err != nil {
		return &Result{Id: op.Id, Err: err.Error()}
	}
	return &Result{Id: op.Id}
}
