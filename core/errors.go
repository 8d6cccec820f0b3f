package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies engine errors
type Kind uint8

const (
	KindOutOfBounds Kind = iota + 1
	KindPositionOccupied
	KindTerminalSetup
	KindThreadPanic
)

// Sentinels for errors.Is classification
var (
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrPositionOccupied = errors.New("position occupied")
	ErrTerminalSetup    = errors.New("terminal setup failed")
	ErrThreadPanic      = errors.New("thread panic")
)

func (k Kind) sentinel() error {
	switch k {
	case KindOutOfBounds:
		return ErrOutOfBounds
	case KindPositionOccupied:
		return ErrPositionOccupied
	case KindTerminalSetup:
		return ErrTerminalSetup
	case KindThreadPanic:
		return ErrThreadPanic
	}
	return nil
}

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindOutOfBounds:
		return "OutOfBounds"
	case KindPositionOccupied:
		return "PositionOccupied"
	case KindTerminalSetup:
		return "TerminalSetup"
	case KindThreadPanic:
		return "ThreadPanic"
	}
	return "Unknown"
}

// Error is the engine error value
// Pos and Size are set for grid errors, Unit and Value for setup and panic errors
type Error struct {
	Kind  Kind
	Pos   Position
	Size  Size
	Unit  string
	Value any
	Stack []byte
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindOutOfBounds:
		return fmt.Sprintf("%v: %v outside %v", ErrOutOfBounds, e.Pos, e.Size)
	case KindPositionOccupied:
		return fmt.Sprintf("%v: %v", ErrPositionOccupied, e.Pos)
	case KindTerminalSetup:
		return fmt.Sprintf("%v: %s: %v", ErrTerminalSetup, e.Unit, e.Err)
	case KindThreadPanic:
		return fmt.Sprintf("%v: %s: %v", ErrThreadPanic, e.Unit, e.Value)
	}
	return "unknown engine error"
}

// Unwrap exposes the platform error for setup failures
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// OutOfBounds reports a write outside the grid or a wide glyph overrunning its row
// Returned on hot paths, so no stack is captured
func OutOfBounds(pos Position, size Size) error {
	return &Error{Kind: KindOutOfBounds, Pos: pos, Size: size}
}

// PositionOccupied reports a set targeting a continuation cell
func PositionOccupied(pos Position) error {
	return &Error{Kind: KindPositionOccupied, Pos: pos}
}

// TerminalSetup wraps a failed capability enable
func TerminalSetup(capability string, err error) error {
	return errors.WithStack(&Error{Kind: KindTerminalSetup, Unit: capability, Err: err})
}

// ThreadPanic wraps a recovered panic from a named unit
func ThreadPanic(unit string, value any, stack []byte) error {
	e := &Error{Kind: KindThreadPanic, Unit: unit, Value: value, Stack: stack}
	if err, ok := value.(error); ok {
		e.Err = err
	}
	return errors.WithStack(e)
}

// KindOf returns the engine kind of err, zero when err is not an engine error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
