package lifecycle

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrTooLate indicates a handler was registered for a phase that the
	// ProcessingContext has already entered or passed.
	ErrTooLate = errors.New("lifecycle: handler registered too late")

	// ErrAlreadyCommitted indicates a second call to Commit/Execute on a
	// ProcessingContext that has already started.
	ErrAlreadyCommitted = errors.New("lifecycle: processing context already committed")
)

// tooLateError carries the phase that was rejected and the phase the
// context had already advanced to.
type tooLateError struct {
	phase   Phase
	current Phase
}

func (e *tooLateError) Error() string {
	return fmt.Sprintf(
		"lifecycle: cannot register handler for phase %s: context is already in phase %s",
		e.phase, e.current,
	)
}

func (e *tooLateError) Unwrap() error {
	return ErrTooLate
}

// HandlerFailure is the recorded cause of the first phase handler that
// failed during a Unit of Work's execution. It is the error carried by the
// future returned from Commit/Execute; every on_error hook receives the
// same Phase and Cause as separate arguments.
type HandlerFailure struct {
	// Phase is the phase the failing handler was registered under.
	Phase Phase
	// Cause is the original error returned (or panic converted to error) by
	// the handler.
	Cause error
}

func (e *HandlerFailure) Error() string {
	return fmt.Sprintf("lifecycle: handler in phase %s failed: %v", e.Phase, e.Cause)
}

func (e *HandlerFailure) Unwrap() error {
	return e.Cause
}

// PanicError wraps a panic recovered from a handler, converting it into a
// regular error without losing the stack trace.
type PanicError struct {
	Value      any
	StackTrace string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("lifecycle: handler panicked: %v", e.Value)
}

// atomicCause is a single-assignment holder for the first (phase, cause)
// pair recorded against a ProcessingContext. Only the first
// compareAndSwapNil call succeeds; every later one is rejected.
type atomicCause struct {
	v atomic.Pointer[causeAndPhase]
}

func (a *atomicCause) load() *causeAndPhase {
	return a.v.Load()
}

// compareAndSwapNil stores cp only if nothing has been recorded yet,
// reporting whether it won the race.
func (a *atomicCause) compareAndSwapNil(cp *causeAndPhase) bool {
	return a.v.CompareAndSwap(nil, cp)
}
