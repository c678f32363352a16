package dispatch

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand matches any *DispatchError.
var ErrUnknownCommand = errors.New("unrecognized command")

// DispatchError reports a line that is not one of the known command shapes.
// It stops the dispatch loop.
type DispatchError struct {
	LineNumber int
	Line       string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.LineNumber, ErrUnknownCommand, e.Line)
}

func (e *DispatchError) Unwrap() error {
	return ErrUnknownCommand
}

// CommandError wraps an error returned by the engine while running a
// well-formed command.
type CommandError struct {
	LineNumber int
	Line       string
	Err        error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.LineNumber, e.Line, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
