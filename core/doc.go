// Package core provides the gear for declarative, specification-driven
// workflow machines.
//
// The primary type is Spec(ification), and the primary method is
// Instance.Fire().  A Spec names a set of States; each State owns a set
// of Events; each Event names the State it transitions to.  States and
// Events can carry arbitrary ordered Meta data for tooling, optional
// entry/exit hooks, and optional Actions that run when an Event fires.
//
// Specs are usually built with the declarative Builder via a Registry:
//
//	core.Define("article", func(w *core.Builder) {
//		w.State("new", func(s *core.StateScope) {
//			s.Event("submit", "awaiting_review")
//		})
//		w.State("awaiting_review", func(s *core.StateScope) {
//			s.Event("review", "being_reviewed")
//		})
//	})
//
// Defining a name that already exists re-opens the registered Spec and
// merges the new declarations into it.  The initial state of a Spec is
// the first state ever declared for its name, no matter how many later
// definitions add more states.
//
// A Spec is bound to a live subject with NewInstance, which tracks the
// current state.  Instance.Fire runs the event's Action, the Spec's
// transition hooks, the source state's exit hook, the state mutation,
// and the destination state's entry hook, in that order.  An Action can
// abort the whole transition before the mutation by returning Halt();
// the instance then reports Halted() and HaltedBecause().
//
// An Event's Action can be a Go function or an ActionSource: code for
// an Interpreter (see the interpreters packages) that is compiled by
// Spec.Compile, the same way whether the Spec was built in Go or parsed
// from a YAML document via ParseSpec.
//
// A Spec, once built and compiled, should be treated as read-only and
// can be shared by any number of Instances.  A single Instance is not
// safe for concurrent Fire calls; neither is defining a Spec while
// Instances bound to it are firing.  Callers needing either must
// synchronize externally.
package core
