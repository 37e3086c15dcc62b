package core

import (
	"context"
)

// Spec is a specification used to run workflow instances.
//
// A specification gives the structure of the workflow: its states, the
// events legal in each state, and the hooks that fire around
// transitions.  This data does not include any instance state (such as
// an Instance's current state name).
//
// States are ordered by declaration.  The first state ever declared is
// the initial state for every Instance bound to this Spec.
//
// If a specification includes Events or hooks with ActionSources, then
// the specification should be Compiled before use.
type Spec struct {
	// Name is the generic name for this workflow.  Something like
	// "article-review".
	Name string `json:"name,omitempty"`

	// Doc is general documentation about how this specification
	// works.
	Doc string `json:"doc,omitempty"`

	// States is the ordered structure of the workflow.
	States []*State `json:"states,omitempty"`

	// TransitionHooks fire, in registration order, on every
	// successful transition before the source state's exit hook.
	TransitionHooks []Hook `json:"-"`

	compiled bool
}

// State looks up a state by name.  Returns nil if the name is not
// declared.
func (s *Spec) State(name string) *State {
	for _, st := range s.States {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// InitialState returns the name of the first state ever declared, or
// "" if the Spec has no states.
func (s *Spec) InitialState() string {
	if len(s.States) == 0 {
		return ""
	}
	return s.States[0].Name
}

// StateNames returns the state names in declaration order.
func (s *Spec) StateNames() []string {
	acc := make([]string, len(s.States))
	for i, st := range s.States {
		acc[i] = st.Name
	}
	return acc
}

// AddState appends a state.  Returns DuplicateState if the name is
// already declared.
func (s *Spec) AddState(st *State) error {
	if nil != s.State(st.Name) {
		return &DuplicateState{s, st.Name}
	}
	s.States = append(s.States, st)
	return nil
}

// Copy makes a deep-ish copy of the Spec.  Hooks and compiled Actions
// are shared, not copied.
func (s *Spec) Copy() *Spec {
	states := make([]*State, len(s.States))
	for i, st := range s.States {
		states[i] = st.Copy()
	}
	hooks := make([]Hook, len(s.TransitionHooks))
	copy(hooks, s.TransitionHooks)
	return &Spec{
		Name:            s.Name,
		Doc:             s.Doc,
		States:          states,
		TransitionHooks: hooks,
	}
}

// Merge folds another Spec's declarations into this one, following the
// re-opening rules: states new to this Spec are appended in order;
// an existing state gains the other's events (same-name events are
// replaced in place) and has its hooks, doc, and meta overwritten
// where the other supplies them.  Transition hooks are appended.
//
// Merge is how a parsed YAML patch document re-opens a registered
// Spec; Registry.Register calls it.
func (s *Spec) Merge(other *Spec) {
	if other.Doc != "" {
		s.Doc = other.Doc
	}
	for _, st := range other.States {
		mine := s.State(st.Name)
		if mine == nil {
			s.States = append(s.States, st)
			continue
		}
		if st.Doc != "" {
			mine.Doc = st.Doc
		}
		if st.OnEntry != nil {
			mine.OnEntry = st.OnEntry
		}
		if st.OnExit != nil {
			mine.OnExit = st.OnExit
		}
		if st.EntrySource != nil {
			mine.EntrySource = st.EntrySource
		}
		if st.ExitSource != nil {
			mine.ExitSource = st.ExitSource
		}
		if st.Meta != nil {
			mine.Meta = st.Meta
		}
		for _, e := range st.Events {
			if old := mine.Event(e.Name); old != nil {
				*old = *e
				continue
			}
			mine.Events = append(mine.Events, e)
		}
	}
	s.TransitionHooks = append(s.TransitionHooks, other.TransitionHooks...)
}

// Compile compiles all ActionSources (event actions and scripted
// entry/exit hooks) into Actions using the given interpreters, which
// default to DefaultInterpreters.
//
// Compile does not verify that event targets name declared states.
// Target resolution is deliberately lazy: it happens when a transition
// is attempted, so that a later re-opening of the Spec can supply a
// state that an earlier declaration referenced.
func (s *Spec) Compile(ctx context.Context, interpreters map[string]Interpreter, force bool) error {
	for _, st := range s.States {
		if st.EntrySource != nil && (force || st.OnEntry == nil) {
			action, err := st.EntrySource.Compile(ctx, interpreters)
			if err != nil {
				return err
			}
			st.OnEntry = action.Exec
		}
		if st.ExitSource != nil && (force || st.OnExit == nil) {
			action, err := st.ExitSource.Compile(ctx, interpreters)
			if err != nil {
				return err
			}
			st.OnExit = action.Exec
		}
		for _, e := range st.Events {
			if e.ActionSource != nil && (force || e.Action == nil) {
				action, err := e.ActionSource.Compile(ctx, interpreters)
				if err != nil {
					return err
				}
				e.Action = action
			}
		}
	}
	s.compiled = true
	return nil
}

// State is a named node that an Instance can occupy.
//
// A State owns its Events (ordered by declaration, names unique within
// the State), optional entry/exit hooks, and a Meta dictionary.
type State struct {
	Name string `json:"name"`

	Doc string `json:"doc,omitempty"`

	// Events are the transitions legal in this state.
	Events []*Event `json:"events,omitempty"`

	// OnEntry fires after a transition into this state, with the
	// mutation already applied.
	OnEntry Hook `json:"-"`

	// OnExit fires before a transition out of this state, with the
	// mutation not yet applied.
	OnExit Hook `json:"-"`

	// EntrySource and ExitSource, if given, can be compiled to the
	// corresponding hooks.  See Spec.Compile.
	EntrySource *ActionSource `json:"onEntry,omitempty"`
	ExitSource  *ActionSource `json:"onExit,omitempty"`

	Meta *Meta `json:"meta,omitempty"`
}

// Event looks up an event by name.  Returns nil if the event is not
// declared in this state.
func (st *State) Event(name string) *Event {
	for _, e := range st.Events {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// EventNames returns the event names in declaration order.
func (st *State) EventNames() []string {
	acc := make([]string, len(st.Events))
	for i, e := range st.Events {
		acc[i] = e.Name
	}
	return acc
}

// AddEvent appends an event.  Returns DuplicateEvent if the name is
// already declared in this state.
func (st *State) AddEvent(e *Event) error {
	if nil != st.Event(e.Name) {
		return &DuplicateEvent{StateName: st.Name, EventName: e.Name}
	}
	st.Events = append(st.Events, e)
	return nil
}

// Terminal determines if a state has no events.
func (st *State) Terminal() bool {
	return 0 == len(st.Events)
}

// Copy makes a copy of the State.  Hooks and compiled Actions are
// shared.
func (st *State) Copy() *State {
	events := make([]*Event, len(st.Events))
	for i, e := range st.Events {
		events[i] = e.Copy()
	}
	return &State{
		Name:        st.Name,
		Doc:         st.Doc,
		Events:      events,
		OnEntry:     st.OnEntry,
		OnExit:      st.OnExit,
		EntrySource: st.EntrySource.Copy(),
		ExitSource:  st.ExitSource.Copy(),
		Meta:        st.Meta.Copy(),
	}
}

// Event is a named, state-scoped operation that transitions an
// Instance to the Target state when fired.
type Event struct {
	Name string `json:"name"`

	Doc string `json:"doc,omitempty"`

	// Target is the name of the next state for this transition.
	// The target is not required to exist until the event is
	// actually fired.
	Target string `json:"to"`

	// Action, if present, runs before any transition hooks and can
	// abort the transition by returning Halt().
	Action Action `json:"-"`

	// ActionSource, if given, can be compiled to an Action.  See
	// Spec.Compile.
	ActionSource *ActionSource `json:"action,omitempty"`

	Meta *Meta `json:"meta,omitempty"`
}

// Copy makes a copy of the Event.  The Action and ActionSource are
// shared.
func (e *Event) Copy() *Event {
	return &Event{
		Name:         e.Name,
		Doc:          e.Doc,
		Target:       e.Target,
		Action:       e.Action,
		ActionSource: e.ActionSource,
		Meta:         e.Meta.Copy(),
	}
}
