// Package scheduler provides lifecycle.Scheduler implementations. Inline
// runs submitted work on the calling goroutine; Pool bounds concurrency
// with a weighted semaphore so a large bucket of same-phase handlers
// cannot spawn unbounded goroutines.
package scheduler
