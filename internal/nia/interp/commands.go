package interp

import (
	nerrors "github.com/nialang/nia/internal/nia/errors"
	"github.com/nialang/nia/internal/nia/value"
)

// CommandKind tags the inbound operation a daemon command-thread posts
// to the interpreter: execute code; define/remove/get defined actions;
// define/remove/get defined modifiers; define/remove/get defined
// devices; define/remove/change/get defined mappings; start/stop
// listening; query listening state. Devices, actions, modifiers, and
// mappings carry no daemon-specific semantics here — they are opaque
// Object payloads, since the device model itself is out of scope.
type CommandKind uint8

const (
	CmdExecute CommandKind = iota
	CmdDefineAction
	CmdRemoveAction
	CmdGetAction
	CmdDefineModifier
	CmdRemoveModifier
	CmdGetModifier
	CmdDefineDevice
	CmdRemoveDevice
	CmdGetDevice
	CmdDefineMapping
	CmdRemoveMapping
	CmdChangeMapping
	CmdGetMapping
	CmdStartListening
	CmdStopListening
	CmdQueryListening
)

// Command is one tagged request from the command surface. Name
// addresses an entry in the relevant registry (action/modifier/device/
// mapping); Source is the script text for CmdExecute; Payload is the
// Value stored for a define/change operation.
type Command struct {
	Kind    CommandKind
	Name    string
	Source  string
	Payload value.Value
}

// ResultKind tags which of the three result shapes every command
// response carries: Success(payload), Error(message), or
// Failure(message).
type ResultKind uint8

const (
	ResultSuccess ResultKind = iota
	ResultError
	ResultFailure
)

// Result is the tagged response to a Command.
type Result struct {
	Kind    ResultKind
	Payload value.Value
	Message string
}

func success(payload value.Value) Result { return Result{Kind: ResultSuccess, Payload: payload} }

func errorResult(message string) Result { return Result{Kind: ResultError, Message: message} }

func failureResult(message string) Result { return Result{Kind: ResultFailure, Message: message} }

// fromError classifies err into an Error or Failure result: *errors.Error
// of Kind Failure is non-recoverable and reported as ResultFailure;
// everything else is ResultError.
func fromError(store *value.Store, err error) Result {
	if nerrors.Is(err, nerrors.Failure) {
		return failureResult(err.Error())
	}
	if nerr, ok := err.(*nerrors.Error); ok {
		return errorResult(nerr.Summary(store))
	}
	return errorResult(err.Error())
}

// Dispatch executes one Command synchronously and returns its Result —
// the interpreter-side half of a command thread. Commands never run
// concurrently with one another; the caller is
// responsible for serializing calls the same way the daemon's single
// command thread would.
func Dispatch(interp *Interpreter, cmd Command) Result {
	switch cmd.Kind {
	case CmdExecute:
		v, err := interp.Execute(cmd.Source)
		if err != nil {
			return fromError(interp.Store, err)
		}
		return success(v)

	case CmdDefineAction:
		return interp.actions.define(interp.Store, cmd.Name, cmd.Payload)
	case CmdRemoveAction:
		return interp.actions.remove(interp.Store, cmd.Name)
	case CmdGetAction:
		return interp.actions.get(interp.Store, cmd.Name)

	case CmdDefineModifier:
		return interp.modifiers.define(interp.Store, cmd.Name, cmd.Payload)
	case CmdRemoveModifier:
		return interp.modifiers.remove(interp.Store, cmd.Name)
	case CmdGetModifier:
		return interp.modifiers.get(interp.Store, cmd.Name)

	case CmdDefineDevice:
		return interp.devices.define(interp.Store, cmd.Name, cmd.Payload)
	case CmdRemoveDevice:
		return interp.devices.remove(interp.Store, cmd.Name)
	case CmdGetDevice:
		return interp.devices.get(interp.Store, cmd.Name)

	case CmdDefineMapping:
		return interp.mappings.define(interp.Store, cmd.Name, cmd.Payload)
	case CmdRemoveMapping:
		return interp.mappings.remove(interp.Store, cmd.Name)
	case CmdChangeMapping:
		return interp.mappings.change(interp.Store, cmd.Name, cmd.Payload)
	case CmdGetMapping:
		return interp.mappings.get(interp.Store, cmd.Name)

	case CmdStartListening:
		interp.listening = true
		return success(value.Boolean(true))
	case CmdStopListening:
		interp.listening = false
		return success(value.Boolean(true))
	case CmdQueryListening:
		return success(value.Boolean(interp.listening))

	default:
		return errorResult("unknown command kind")
	}
}

// registry is the shared define/remove/get/change table behind the
// action, modifier, device, and mapping command families — they all
// follow the same name-to-Value lifecycle, so one implementation
// backs all four.
type registry struct {
	entries map[string]value.Value
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]value.Value)}
}

func (r *registry) define(store *value.Store, name string, payload value.Value) Result {
	if _, exists := r.entries[name]; exists {
		return errorResult("already defined: " + name)
	}
	r.entries[name] = payload
	return success(payload)
}

func (r *registry) remove(store *value.Store, name string) Result {
	if _, exists := r.entries[name]; !exists {
		return errorResult("not defined: " + name)
	}
	delete(r.entries, name)
	return success(store.Nil())
}

func (r *registry) get(store *value.Store, name string) Result {
	v, exists := r.entries[name]
	if !exists {
		return errorResult("not defined: " + name)
	}
	return success(v)
}

func (r *registry) change(store *value.Store, name string, payload value.Value) Result {
	if _, exists := r.entries[name]; !exists {
		return errorResult("not defined: " + name)
	}
	r.entries[name] = payload
	return success(payload)
}
