package core

import (
	"context"
	"errors"
)

var (
	// InterpreterNotFound occurs when you try to Compile an
	// ActionSource, and the required interpreter isn't in the
	// given map of interpreters.
	InterpreterNotFound = errors.New("interpreter not found")

	// DefaultInterpreters will be used by ActionSource.Compile if
	// given nil interpreters.
	DefaultInterpreters = make(map[string]Interpreter)
)

// Transition carries the context of one firing to every routine that
// runs during it.
//
// Args is the argument list given to Fire.  It is shared by identity
// across the action and all hooks of one firing, so a routine that
// mutates a mutable argument is observed by the routines that fire
// after it.
type Transition struct {
	// Instance is the instance being transitioned.
	Instance *Instance

	// Spec is the instance's specification.
	Spec *Spec

	// Event is the definition of the event that fired.
	Event *Event

	// From is the state the instance occupied when the event fired.
	From string

	// To is the event's (resolved) target state.
	To string

	// Args holds the arguments given to Fire.
	Args []interface{}
}

// Action runs when an event fires, before any transition hooks.
//
// Returning an error wrapping a *HaltError (see Halt) aborts the
// transition cleanly; any other error aborts it as a failure.
type Action interface {
	// Exec executes this action.
	Exec(ctx context.Context, t *Transition) error
}

// ActionFunc is an Action implemented by a Go function.
type ActionFunc func(ctx context.Context, t *Transition) error

// Exec runs the function.
func (f ActionFunc) Exec(ctx context.Context, t *Transition) error {
	return f(ctx, t)
}

// Hook is a routine fired around a transition: a Spec's transition
// hooks and a State's entry/exit hooks.
//
// Hooks cannot halt a transition.  A hook error aborts the firing and
// is returned to the caller as-is.
type Hook func(ctx context.Context, t *Transition) error

// Interpreter can optionally compile and execute code for scripted
// actions and hooks.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code interface{}) (interface{}, error)

	// Exec executes the code.  The result of a previous Compile()
	// might be provided.
	Exec(ctx context.Context, t *Transition, code interface{}, compiled interface{}) error
}

// ActionSource can be compiled to an Action.
type ActionSource struct {
	Interpreter string      `json:"interpreter,omitempty"`
	Source      interface{} `json:"source"`
}

// Copy makes a shallow copy.
//
// Needed for Spec.Copy().
func (a *ActionSource) Copy() *ActionSource {
	if a == nil {
		return nil
	}
	return &ActionSource{
		Interpreter: a.Interpreter,
		Source:      a.Source,
	}
}

// Compile attempts to compile the ActionSource into an Action using
// the given interpreters, which default to DefaultInterpreters.
func (a *ActionSource) Compile(ctx context.Context, interpreters map[string]Interpreter) (Action, error) {
	if interpreters == nil {
		interpreters = DefaultInterpreters
	}

	interpreter, have := interpreters[a.Interpreter]
	if !have {
		return nil, InterpreterNotFound
	}

	compiled, err := interpreter.Compile(ctx, a.Source)
	if err != nil {
		return nil, err
	}

	return ActionFunc(func(ctx context.Context, t *Transition) error {
		return interpreter.Exec(ctx, t, a.Source, compiled)
	}), nil
}
