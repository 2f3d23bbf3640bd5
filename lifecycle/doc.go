// Package lifecycle implements the asynchronous Unit-of-Work processing
// lifecycle: a cooperative, phase-ordered execution engine that drives a
// message or batch through a sequence of named [Phase]s, accumulates
// resources and terminal hooks along the way, and guarantees deterministic
// ordering, single-commit semantics, and fan-out of error/completion
// notifications even when hooks are registered concurrently with execution.
//
// [AsyncUnitOfWork] is the user-facing façade. It wraps a [ProcessingContext],
// which holds all mutable state: per-phase handler queues, the current-phase
// cursor, the commit status, the first-recorded failure, a [ResourceBag], and
// the terminal-hook queues.
//
// A ProcessingContext reaches a terminal state ([StatusCompletedOK] or
// [StatusCompletedError]) exactly once. Handlers registered for a phase that
// has already started fail synchronously with [ErrTooLate]. Terminal hooks
// registered after the terminal state is reached still fire exactly once,
// racing safely against the goroutine that is fanning them out.
package lifecycle
