package lifecycle

import (
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// ErrorHook is a terminal hook invoked after a ProcessingContext reaches
// StatusCompletedError. Any panic or returned behavior from the handler
// itself is not observed by the caller — hooks don't return errors; see
// HandlerFailure for the semantics of a failing phase handler.
type ErrorHook func(ctx *ProcessingContext, phase Phase, cause error)

// CompletionHook is a terminal hook invoked after a ProcessingContext
// reaches StatusCompletedOK.
type CompletionHook func(ctx *ProcessingContext)

// causeAndPhase is the (phase, cause) pair recorded by the first failing
// handler.
type causeAndPhase struct {
	phase Phase
	cause error
}

// ProcessingContext is the running instance of a Unit of Work. It holds
// per-phase handler buckets, a current-phase cursor, the commit status,
// the first-recorded failure, a ResourceBag, and the terminal-hook queues.
// A ProcessingContext is created by AsyncUnitOfWork's constructor and
// reaches a terminal state exactly once.
type ProcessingContext struct {
	identifier string
	scheduler  Scheduler
	logger     Logger

	mu           sync.Mutex
	buckets      phaseBuckets
	currentPhase *Phase

	status     atomicStatus
	errorCause atomicCause

	onErrorQueue      *hookQueue[ErrorHook]
	whenCompleteQueue *hookQueue[CompletionHook]

	resources *ResourceBag
}

// NewProcessingContext creates a ProcessingContext. An empty identifier is
// replaced with a random v4 UUID. A nil scheduler defaults to
// InlineScheduler; a nil logger discards everything.
func NewProcessingContext(identifier string, scheduler Scheduler, logger Logger) *ProcessingContext {
	if identifier == "" {
		identifier = uuid.NewString()
	}
	if scheduler == nil {
		scheduler = InlineScheduler
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &ProcessingContext{
		identifier:        identifier,
		scheduler:         scheduler,
		logger:            logger,
		resources:         NewResourceBag(),
		onErrorQueue:      newHookQueue[ErrorHook](),
		whenCompleteQueue: newHookQueue[CompletionHook](),
	}
}

// Identifier returns the context's stable identifier.
func (c *ProcessingContext) Identifier() string { return c.identifier }

// Resources returns the ResourceBag scoped to this context's lifetime.
func (c *ProcessingContext) Resources() *ResourceBag { return c.resources }

// Status returns the current commit status.
func (c *ProcessingContext) Status() Status { return c.status.load() }

// IsStarted reports whether Commit has been called, successfully or not.
func (c *ProcessingContext) IsStarted() bool { return c.status.load() != StatusNotStarted }

// IsCommitted reports whether the context completed successfully.
func (c *ProcessingContext) IsCommitted() bool { return c.status.load() == StatusCompletedOK }

// IsError reports whether the context completed with a failure.
func (c *ProcessingContext) IsError() bool { return c.status.load() == StatusCompletedError }

// IsCompleted reports whether the context has reached any terminal state.
func (c *ProcessingContext) IsCompleted() bool {
	s := c.status.load()
	return s == StatusCompletedOK || s == StatusCompletedError
}

// CurrentPhase returns the phase currently (or most recently) executing,
// and whether one has been entered yet.
func (c *ProcessingContext) CurrentPhase() (Phase, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentPhase == nil {
		return Phase{}, false
	}
	return *c.currentPhase, true
}

// On registers action for phase. It fails with ErrTooLate if the context
// has already advanced to or past phase.
func (c *ProcessingContext) On(phase Phase, action Action) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentPhase != nil && phase.Order <= c.currentPhase.Order {
		return &tooLateError{phase: phase, current: *c.currentPhase}
	}
	c.buckets.register(phase, action)
	return nil
}

// OnError registers hook to run once the context reaches
// StatusCompletedError, with the recorded (phase, cause). If the context
// has already reached that state, hook races against the completer using
// an append-then-try-remove protocol so it still fires exactly once.
func (c *ProcessingContext) OnError(hook ErrorHook) {
	entry := c.onErrorQueue.append(hook)
	if c.status.load() == StatusCompletedError {
		if c.onErrorQueue.tryRemove(entry) {
			cp := c.errorCause.load()
			c.dispatchError(hook, cp.phase, cp.cause)
		}
		// else: the completer has already popped this entry and owns it.
	}
}

// WhenComplete registers hook to run once the context reaches
// StatusCompletedOK. Symmetric to OnError.
func (c *ProcessingContext) WhenComplete(hook CompletionHook) {
	entry := c.whenCompleteQueue.append(hook)
	if c.status.load() == StatusCompletedOK {
		if c.whenCompleteQueue.tryRemove(entry) {
			c.dispatchCompletion(hook)
		}
	}
}

// Commit atomically transitions NotStarted -> Started and drives the
// drain loop. The returned Future resolves with nil once all phases have
// run without failure, or with the first HandlerFailure otherwise. A
// second call fails immediately with ErrAlreadyCommitted and leaves the
// first outcome intact.
func (c *ProcessingContext) Commit() *Future[struct{}] {
	fut := newFuture[struct{}]()
	if !c.status.compareAndSwap(StatusNotStarted, StatusStarted) {
		fut.complete(struct{}{}, ErrAlreadyCommitted)
		return fut
	}

	go func() {
		if err := c.drainAll(); err != nil {
			c.status.store(StatusCompletedError)
			c.fanOutError()
			fut.complete(struct{}{}, err)
			return
		}
		c.status.store(StatusCompletedOK)
		c.fanOutComplete()
		fut.complete(struct{}{}, nil)
	}()

	return fut
}

// drainAll repeatedly pops and runs the lowest-ordered remaining bucket. A
// bucket failure stops the loop: later phases are not executed.
func (c *ProcessingContext) drainAll() error {
	for {
		c.mu.Lock()
		bucket := c.buckets.popLowest()
		if bucket == nil {
			c.mu.Unlock()
			return nil
		}
		rep := bucket.representativePhase()
		c.currentPhase = &rep
		c.mu.Unlock()

		if c.runPhaseBucket(bucket) {
			cp := c.errorCause.load()
			return &HandlerFailure{Phase: cp.phase, Cause: cp.cause}
		}
	}
}

// runPhaseBucket runs every handler in bucket concurrently on the work
// scheduler and waits for all of them, regardless of whether any fail (no
// intra-bucket short-circuit). It reports whether the bucket failed.
func (c *ProcessingContext) runPhaseBucket(bucket *phaseBucket) (failed bool) {
	var wg sync.WaitGroup
	wg.Add(len(bucket.entries))
	for _, entry := range bucket.entries {
		task := c.safe(entry.phase, entry.action)
		c.scheduler.Submit(func() {
			defer wg.Done()
			task()
		})
	}
	wg.Wait()
	return c.errorCause.load() != nil
}

// safe wraps action so a panic is converted into an error, and any failure
// (panic or returned error) is recorded as the context's error cause via
// CompareAndSwap — the chronologically first failure wins; later failures
// are logged at debug and otherwise dropped.
func (c *ProcessingContext) safe(phase Phase, action Action) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, StackTrace: string(debug.Stack())}
			}
			if err != nil {
				if !c.errorCause.compareAndSwapNil(&causeAndPhase{phase: phase, cause: err}) {
					c.logger.Debug("handler failed after an earlier failure was already recorded",
						"phase", phase.String(), "error", err)
				}
			}
		}()
		return action(c)
	}
}

func (c *ProcessingContext) fanOutError() {
	cp := c.errorCause.load()
	for {
		hook, ok := c.onErrorQueue.pop()
		if !ok {
			return
		}
		c.dispatchError(hook, cp.phase, cp.cause)
	}
}

func (c *ProcessingContext) fanOutComplete() {
	for {
		hook, ok := c.whenCompleteQueue.pop()
		if !ok {
			return
		}
		c.dispatchCompletion(hook)
	}
}

func (c *ProcessingContext) dispatchError(hook ErrorHook, phase Phase, cause error) {
	c.scheduler.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Warn("on_error hook panicked", "phase", phase.String(), "recovered", r)
			}
		}()
		hook(c, phase, cause)
	})
}

func (c *ProcessingContext) dispatchCompletion(hook CompletionHook) {
	c.scheduler.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				c.logger.Warn("when_complete hook panicked", "recovered", r)
			}
		}()
		hook(c)
	})
}
