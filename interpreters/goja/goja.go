package goja

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/statepath/workflow/core"

	"github.com/dop251/goja"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Exec if the execution is
	// interrupted (by context cancellation, not by halt()).
	Interrupted = errors.New(InterruptedMessage)

	// haltedMessage is the interrupt token used to stop the
	// runtime immediately after a script calls halt().
	haltedMessage = "halted"
)

// init adds an Interpreter as one of the DefaultInterpreters.
func init() {
	core.DefaultInterpreters["goja"] = NewInterpreter()
}

// Interpreter implements core.Interpreter using Goja, which is a Go
// implementation of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
type Interpreter struct {
	// Testing exposes some runtime capabilities (sleep) that
	// production specs shouldn't use.
	Testing bool
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

// Compile calls goja.Compile on the given source, which must be a
// string.
func (i *Interpreter) Compile(ctx context.Context, src interface{}) (interface{}, error) {
	code, is := src.(string)
	if !is {
		return nil, fmt.Errorf("bad Goja source (%T)", src)
	}

	code = wrapSrc(code)

	obj, err := goja.Compile("", code, true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + code)
	}

	return obj, nil
}

func protest(o *goja.Runtime, x interface{}) {
	panic(o.ToValue(x))
}

// Gensym generates a random string of the given length.
func Gensym(n int) string {
	bs := make([]byte, (n+1)/2)
	rand.Read(bs)
	return fmt.Sprintf("%x", bs)[0:n]
}

// Exec implements the Interpreter method of the same name.
//
// The following properties are available from the runtime at _.
//
// These are the most important:
//
//	args: the argument list given to Fire, shared by identity with
//	  every other routine in the firing.
//	halt(reason?): abort the in-progress transition.  Execution of
//	  the script stops immediately, and the engine reports the halt
//	  through the instance and the firing's outcome.
//
// Context about the firing:
//
//	event, from, to, spec: names, as strings.
//	meta: the firing event's meta dictionary, as a plain object.
//
// Some utilities:
//
//	log(x): log the JSON representation of x.
//	esc(s): URL query-escape the given string.
//	gensym(): generate a random string.
//
// For testing only (requires the Testing flag):
//
//	sleep(ms): sleep for the given number of milliseconds.
func (i *Interpreter) Exec(ctx context.Context, t *core.Transition, src interface{}, compiled interface{}) error {

	var p *goja.Program
	if compiled == nil {
		var err error
		if compiled, err = i.Compile(ctx, src); err != nil {
			return err
		}
	}
	var is bool
	if p, is = compiled.(*goja.Program); !is {
		return fmt.Errorf("Goja bad compilation: %T %#v", compiled, compiled)
	}

	o := goja.New()

	env := map[string]interface{}{
		"args":  t.Args,
		"event": t.Event.Name,
		"from":  t.From,
		"to":    t.To,
		"spec":  t.Spec.Name,
		"meta":  t.Event.Meta.Map(),
	}

	o.Set("_", env)

	if i.Testing {
		o.Set("sleep", func(ms int) {
			time.Sleep(time.Duration(ms) * time.Millisecond)
		})
	}

	var (
		halted     bool
		haltReason string
	)

	env["halt"] = func(reason goja.Value) interface{} {
		halted = true
		if reason != nil && !goja.IsUndefined(reason) && !goja.IsNull(reason) {
			haltReason = reason.String()
		}
		// Stop the script right here; the engine turns this
		// into the halt signal below.
		o.Interrupt(haltedMessage)
		return nil
	}

	env["gensym"] = func() interface{} {
		return Gensym(32)
	}

	env["esc"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		s, is := x.(string)
		if !is {
			protest(o, "not a string")
		}
		return url.QueryEscape(s)
	}

	env["log"] = func(x interface{}) interface{} {
		switch vv := x.(type) {
		case goja.Value:
			x = vv.Export()
		}
		js, err := json.Marshal(&x)
		if err != nil {
			log.Println("goja.log (can't marshal: " + err.Error() + ")")
		} else {
			log.Println(string(js))
		}

		return x
	}

	// Per DESIGN.md, halt/log/esc/gensym are also available as
	// globals, not just as properties of _.
	for _, name := range []string{"halt", "gensym", "esc", "log"} {
		o.Set(name, env[name])
	}

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If this Exec method calls cancel() after RunProgram
		// returns, then we'll never see this
		// InterruptedMessage, which is actually the behavior
		// we want.  In this case, we weren't actually
		// interrupted.
		o.Interrupt(InterruptedMessage)
	}()

	_, err := o.RunProgram(p)
	cancel()

	if halted {
		return &core.HaltError{Reason: haltReason}
	}

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return Interrupted
		}
		return err
	}

	return nil
}
