package core

import (
	"context"
)

// Outcome reports what one firing did.
type Outcome struct {
	// Spec is the name of the specification.
	Spec string `json:"spec,omitempty"`

	// Event is the name of the event that fired.
	Event string `json:"event"`

	// From is the state the instance occupied before the firing.
	From string `json:"from"`

	// To is the event's target.  When Applied is false, the
	// instance still occupies From.
	To string `json:"to"`

	// Applied reports whether the state mutation happened.
	Applied bool `json:"applied"`

	// Halted reports whether the event's action halted the
	// transition.  Halted implies !Applied.
	Halted bool `json:"halted,omitempty"`

	// Reason is the halt reason (if any was supplied).
	Reason string `json:"reason,omitempty"`
}

// Fire attempts the named event against the instance's current state.
//
// The full firing order is: the event's Action (if any), the Spec's
// transition hooks in registration order, the source state's OnExit,
// the state mutation, the destination state's OnEntry.  The mutation is
// the only step that changes the instance's state, and it only happens
// if the Action didn't halt.
//
// Fire is the non-raising form: a halt yields an Outcome with Halted
// set and a nil error; Halted()/HaltedBecause() are then queryable on
// the instance.  Resolution failures (UndefinedTransition,
// UnresolvedTarget, UnknownState) and hook errors are always returned
// as errors.
func (in *Instance) Fire(ctx context.Context, event string, args ...interface{}) (*Outcome, error) {
	o, _, err := in.fire(ctx, event, args)
	return o, err
}

// FireStrict is the raising form of Fire: identical semantics, except
// that a halt is additionally returned as the *HaltError carrying the
// halt reason.  The Outcome is still returned alongside it.
func (in *Instance) FireStrict(ctx context.Context, event string, args ...interface{}) (*Outcome, error) {
	o, halt, err := in.fire(ctx, event, args)
	if err != nil {
		return o, err
	}
	if halt != nil {
		return o, halt
	}
	return o, nil
}

// fire is the single underlying firing path for both entry points.
func (in *Instance) fire(ctx context.Context, event string, args []interface{}) (*Outcome, *HaltError, error) {

	st := in.spec.State(in.current)
	if st == nil {
		return nil, nil, &UnknownState{in.spec, in.current}
	}

	e := st.Event(event)
	if e == nil {
		return nil, nil, &UndefinedTransition{
			Spec:      in.spec,
			StateName: st.Name,
			EventName: event,
			Legal:     st.EventNames(),
		}
	}

	// Lazy target resolution: the target only has to exist now.
	to := in.spec.State(e.Target)
	if to == nil {
		return nil, nil, &UnresolvedTarget{in.spec, st.Name, e.Name, e.Target}
	}

	if e.Action == nil && e.ActionSource != nil {
		return nil, nil, &UncompiledAction{in.spec, st.Name, e.Name}
	}
	if st.OnExit == nil && st.ExitSource != nil {
		return nil, nil, &UncompiledAction{in.spec, st.Name, "on_exit"}
	}
	if to.OnEntry == nil && to.EntrySource != nil {
		return nil, nil, &UncompiledAction{in.spec, to.Name, "on_entry"}
	}

	in.halted = false
	in.haltedBecause = ""

	t := &Transition{
		Instance: in,
		Spec:     in.spec,
		Event:    e,
		From:     st.Name,
		To:       to.Name,
		Args:     args,
	}

	o := &Outcome{
		Spec:  in.spec.Name,
		Event: e.Name,
		From:  st.Name,
		To:    to.Name,
	}

	if e.Action != nil {
		if err := e.Action.Exec(ctx, t); err != nil {
			if halt, is := AsHalt(err); is {
				in.halted = true
				in.haltedBecause = halt.Reason
				o.Halted = true
				o.Reason = halt.Reason
				return o, halt, nil
			}
			// A non-halt action error also leaves the state
			// unchanged, but it is a failure, not a guard.
			return o, nil, err
		}
	}

	for _, h := range in.spec.TransitionHooks {
		if err := h(ctx, t); err != nil {
			return o, nil, err
		}
	}

	if st.OnExit != nil {
		if err := st.OnExit(ctx, t); err != nil {
			return o, nil, err
		}
	}

	// The only mutation of the source of truth.
	in.current = to.Name
	o.Applied = true

	if to.OnEntry != nil {
		if err := to.OnEntry(ctx, t); err != nil {
			// The mutation stands; the entry hook failed after
			// it.  The caller sees both the applied Outcome and
			// the error.
			return o, nil, err
		}
	}

	return o, nil, nil
}
