package core

// Instance is the runtime binding of a Spec to one current state.
//
// An Instance is typically owned by (or embedded in) a host value: an
// order, a document, a device.  The engine never persists an Instance;
// a storage collaborator should Restore the current state after
// loading its record and save it again after a successful transition,
// usually from a transition or entry hook.
//
// The current state and halt fields are mutated in place with no
// locking, so concurrent Fire calls on one Instance require external
// synchronization.
type Instance struct {
	spec *Spec

	current string

	halted        bool
	haltedBecause string
}

// NewInstance binds the Spec to a fresh Instance occupying the Spec's
// initial state.
func NewInstance(spec *Spec) *Instance {
	return &Instance{
		spec:    spec,
		current: spec.InitialState(),
	}
}

// Spec returns the bound specification.
func (in *Instance) Spec() *Spec {
	return in.spec
}

// CurrentState returns the name of the state the instance occupies.
func (in *Instance) CurrentState() string {
	return in.current
}

// Is reports whether the instance occupies the named state.
func (in *Instance) Is(name string) bool {
	return in.current == name
}

// Can reports whether the named event is defined in the current state.
// Can does not consider guards: a halting action still counts.
func (in *Instance) Can(event string) bool {
	st := in.spec.State(in.current)
	if st == nil {
		return false
	}
	return nil != st.Event(event)
}

// Halted reports whether the most recent firing was halted by its
// action.  Reset at the start of every firing.
func (in *Instance) Halted() bool {
	return in.halted
}

// HaltedBecause returns the reason given to Halt during the most
// recent firing, or "" if none was supplied (or nothing halted).
func (in *Instance) HaltedBecause() string {
	return in.haltedBecause
}

// Restore sets the current state from external storage.  Returns
// UnknownState if the Spec doesn't declare the name.
func (in *Instance) Restore(name string) error {
	if nil == in.spec.State(name) {
		return &UnknownState{in.spec, name}
	}
	in.current = name
	in.halted = false
	in.haltedBecause = ""
	return nil
}
