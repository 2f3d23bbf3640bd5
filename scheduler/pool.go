package scheduler

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool is a lifecycle.Scheduler backed by a weighted semaphore: at most
// concurrency tasks run at once, regardless of how many are submitted.
// Tasks beyond that limit queue until a slot frees up.
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewPool creates a Pool that runs at most concurrency tasks at a time.
// concurrency must be at least 1.
func NewPool(concurrency int64) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pool{sem: semaphore.NewWeighted(concurrency)}
}

// Submit blocks until a slot is available, then runs task on a new
// goroutine and returns. It never blocks the caller past acquiring the
// slot, so a full pool applies backpressure to the submitter without
// holding up the task that already has a slot.
func (p *Pool) Submit(task func()) {
	// Context.Background: a pool has no notion of a deadline for acquiring
	// a slot. Callers that need one should bound task itself.
	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		// Acquire against a non-cancellable context only fails if weight
		// exceeds the semaphore's total capacity, which NewPool prevents.
		panic(err)
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		task()
	}()
}

// Wait blocks until every task submitted so far has returned. It is meant
// for tests and graceful shutdown, not for ordinary scheduling.
func (p *Pool) Wait() {
	p.wg.Wait()
}
