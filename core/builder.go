package core

// Builder is the declarative surface for building (and re-opening) a
// Spec.  Get one from Registry.Define or make one directly with
// NewBuilder for an unregistered Spec.
//
// Declarations merge: a State declared under an existing name re-opens
// that state, and an Event declared under a name its state already has
// replaces that event's definition in place (keeping its position in
// the declaration order).
type Builder struct {
	spec *Spec
}

// NewBuilder makes a Builder for the given Spec, which may already
// have states.
func NewBuilder(spec *Spec) *Builder {
	return &Builder{spec: spec}
}

// Spec returns the Spec under construction.
func (b *Builder) Spec() *Spec {
	return b.spec
}

// Doc sets the Spec's documentation.
func (b *Builder) Doc(doc string) *Builder {
	b.spec.Doc = doc
	return b
}

// State declares (or re-opens) a state.  The first state ever declared
// becomes the Spec's initial state.  The body may be nil.
func (b *Builder) State(name string, body func(*StateScope)) *Builder {
	st := b.spec.State(name)
	if st == nil {
		st = &State{Name: name}
		b.spec.States = append(b.spec.States, st)
	}
	if body != nil {
		body(&StateScope{state: st})
	}
	return b
}

// OnTransition registers a hook that fires on every successful
// transition, after the event's action and before the source state's
// exit hook.  Hooks fire in registration order.
func (b *Builder) OnTransition(h Hook) *Builder {
	b.spec.TransitionHooks = append(b.spec.TransitionHooks, h)
	return b
}

// StateScope declares the contents of one state.
type StateScope struct {
	state *State
}

// Name returns the name of the state being declared.
func (s *StateScope) Name() string {
	return s.state.Name
}

// Doc sets the state's documentation.
func (s *StateScope) Doc(doc string) *StateScope {
	s.state.Doc = doc
	return s
}

// Event declares an event that transitions to the target state.  The
// target needn't be declared yet; it is resolved when the event first
// fires.  Re-declaring an existing event name replaces that event's
// definition.
func (s *StateScope) Event(name, target string, opts ...EventOption) *StateScope {
	e := s.state.Event(name)
	if e == nil {
		e = &Event{Name: name}
		s.state.Events = append(s.state.Events, e)
	} else {
		// Replacement policy: the new declaration wins wholesale.
		e.Doc = ""
		e.Action = nil
		e.ActionSource = nil
		e.Meta = nil
	}
	e.Target = target
	for _, opt := range opts {
		opt(e)
	}
	return s
}

// OnEntry sets the state's entry hook.
func (s *StateScope) OnEntry(h Hook) *StateScope {
	s.state.OnEntry = h
	return s
}

// OnExit sets the state's exit hook.
func (s *StateScope) OnExit(h Hook) *StateScope {
	s.state.OnExit = h
	return s
}

// Meta attaches one meta pair to the state.
func (s *StateScope) Meta(key string, val interface{}) *StateScope {
	if s.state.Meta == nil {
		s.state.Meta = NewMeta()
	}
	s.state.Meta.Set(key, val)
	return s
}

// EventOption configures an event declaration.
type EventOption func(*Event)

// WithAction gives the event an action implemented in Go.
func WithAction(f ActionFunc) EventOption {
	return func(e *Event) {
		e.Action = f
	}
}

// WithActionSource gives the event scripted action code for the named
// interpreter.  Compile the Spec before firing.
func WithActionSource(interpreter string, source interface{}) EventOption {
	return func(e *Event) {
		e.ActionSource = &ActionSource{
			Interpreter: interpreter,
			Source:      source,
		}
	}
}

// WithMeta attaches one meta pair to the event.
func WithMeta(key string, val interface{}) EventOption {
	return func(e *Event) {
		if e.Meta == nil {
			e.Meta = NewMeta()
		}
		e.Meta.Set(key, val)
	}
}

// WithDoc sets the event's documentation.
func WithDoc(doc string) EventOption {
	return func(e *Event) {
		e.Doc = doc
	}
}
