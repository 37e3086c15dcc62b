package core

// These errors are user errors, not internal errors.

import (
	"errors"
	"strings"
)

// UndefinedTransition occurs when an event is fired that isn't defined
// in the instance's current state.  Legal holds the ordered list of
// event names that are defined there, for diagnostics.
type UndefinedTransition struct {
	Spec      *Spec
	StateName string
	EventName string
	Legal     []string
}

func (e *UndefinedTransition) Error() string {
	msg := `event "` + e.EventName + `" not defined in state "` + e.StateName + `"`
	if e.Spec != nil && e.Spec.Name != "" {
		msg += ` of spec "` + e.Spec.Name + `"`
	}
	if 0 == len(e.Legal) {
		return msg + " (no events are legal there)"
	}
	return msg + " (legal events: " + strings.Join(e.Legal, ", ") + ")"
}

// UnresolvedTarget occurs when a fired event's target names a state
// that the Spec doesn't (yet) declare.  That's a specification
// authoring defect, reported distinctly from UndefinedTransition.
type UnresolvedTarget struct {
	Spec      *Spec
	StateName string
	EventName string
	Target    string
}

func (e *UnresolvedTarget) Error() string {
	return `event "` + e.EventName + `" in state "` + e.StateName +
		`" targets undeclared state "` + e.Target + `" in spec "` + e.Spec.Name + `"`
}

// UnknownState occurs when an Instance's current state isn't declared
// by its Spec, which usually means a bad Restore or a Spec that lost a
// state.
type UnknownState struct {
	Spec      *Spec
	StateName string
}

func (e *UnknownState) Error() string {
	return `state "` + e.StateName + `" not found in spec "` + e.Spec.Name + `"`
}

// DuplicateState occurs when a state is added under a name the Spec
// already declares.
type DuplicateState struct {
	Spec      *Spec
	StateName string
}

func (e *DuplicateState) Error() string {
	return `state "` + e.StateName + `" already declared in spec "` + e.Spec.Name + `"`
}

// DuplicateEvent occurs when an event is added under a name its state
// already declares.
type DuplicateEvent struct {
	StateName string
	EventName string
}

func (e *DuplicateEvent) Error() string {
	return `event "` + e.EventName + `" already declared in state "` + e.StateName + `"`
}

// UncompiledAction occurs when a firing reaches an ActionSource that
// hasn't been Compile()ed.  Usually that compilation happens as part
// of Spec.Compile().  Where names the event, or "on_entry"/"on_exit"
// for a scripted hook.
type UncompiledAction struct {
	Spec      *Spec
	StateName string
	Where     string
}

func (e *UncompiledAction) Error() string {
	return `uncompiled action at "` + e.Where + `" in state "` + e.StateName +
		`" in spec "` + e.Spec.Name + `"`
}

// HaltError is the halt signal.  An event's Action returns one (via
// Halt) to abort the in-progress transition before the state mutation.
//
// Fire reports a halt through the Outcome; FireStrict additionally
// returns the HaltError itself.  Both read the same signal.
type HaltError struct {
	// Reason is the optional explanation given to Halt.
	Reason string
}

func (e *HaltError) Error() string {
	if e.Reason == "" {
		return "transition halted"
	}
	return "transition halted: " + e.Reason
}

// Halt makes the halt signal for an Action to return.  The reason is
// optional ("" for none) and becomes the instance's HaltedBecause.
func Halt(reason string) error {
	return &HaltError{Reason: reason}
}

// AsHalt reports whether the error is (or wraps) a halt signal.
func AsHalt(err error) (*HaltError, bool) {
	var halt *HaltError
	if errors.As(err, &halt) {
		return halt, true
	}
	return nil, false
}
