package core

import (
	"runtime/debug"
)

// Guarded runs fn and converts a panic into a ThreadPanic error for the named unit
// Use for goroutines whose failure must surface at a join point instead of crashing the process
func Guarded(unit string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ThreadPanic(unit, r, debug.Stack())
		}
	}()
	return fn()
}

// GuardedWith is Guarded with a hook that runs after a panic is recovered
func GuardedWith(unit string, onPanic func(error), fn func() error) error {
	err := Guarded(unit, fn)
	if onPanic != nil && KindOf(err) == KindThreadPanic {
		onPanic(err)
	}
	return err
}
