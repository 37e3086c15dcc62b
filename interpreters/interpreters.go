// Package interpreters collects the standard interpreters for
// scripted actions and hooks.
package interpreters

import (
	"github.com/statepath/workflow/core"
	"github.com/statepath/workflow/interpreters/goja"
	"github.com/statepath/workflow/interpreters/noop"
)

// Standard returns the standard interpreter map for Spec.Compile.
func Standard() map[string]core.Interpreter {
	is := make(map[string]core.Interpreter)

	es := goja.NewInterpreter()
	is["goja"] = es
	is["ecmascript"] = es
	is["ecmascript-5.1"] = es

	is["noop"] = noop.NewInterpreter()

	return is
}
