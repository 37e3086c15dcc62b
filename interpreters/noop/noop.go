package noop

import (
	"context"
	"log"

	"github.com/statepath/workflow/core"
)

// Interpreter is a core.Interpreter that does nothing, which is handy
// for validating specs without executing their scripted actions.
type Interpreter struct {
	// Silent, if true, will suppress warning log messages.
	Silent bool
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	if !i.Silent {
		log.Printf("warning: using noop interpreter for compilation")
	}
	return nil, nil
}

func (i *Interpreter) Exec(ctx context.Context, t *core.Transition, code interface{}, compiled interface{}) error {
	if !i.Silent {
		log.Printf("warning: using noop interpreter for execution")
	}
	return nil
}
