package lifecycle

// AsyncUnitOfWork is the user-facing façade over a ProcessingContext. It
// exists so callers don't need to construct or thread a ProcessingContext
// by hand: NewAsyncUnitOfWork wires up a context with sane defaults and
// exposes the same registration and commit surface on the façade type.
type AsyncUnitOfWork struct {
	ctx *ProcessingContext
}

// Option configures an AsyncUnitOfWork at construction time.
type Option func(*ProcessingContext)

// WithIdentifier overrides the random identifier the context would
// otherwise generate.
func WithIdentifier(id string) Option {
	return func(c *ProcessingContext) { c.identifier = id }
}

// WithScheduler overrides the default InlineScheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *ProcessingContext) { c.scheduler = s }
}

// WithLogger overrides the default no-op Logger. A nil l keeps logging a
// no-op rather than storing a nil interface, matching
// NewProcessingContext's own nil handling.
func WithLogger(l Logger) Option {
	return func(c *ProcessingContext) {
		if l == nil {
			l = noopLogger{}
		}
		c.logger = l
	}
}

// NewAsyncUnitOfWork creates an AsyncUnitOfWork ready to accept handler
// registrations.
func NewAsyncUnitOfWork(opts ...Option) *AsyncUnitOfWork {
	ctx := NewProcessingContext("", nil, nil)
	for _, opt := range opts {
		opt(ctx)
	}
	return &AsyncUnitOfWork{ctx: ctx}
}

// Context returns the underlying ProcessingContext, for callers that need
// direct access (e.g. to read Resources from inside a handler closure
// created before the unit of work existed).
func (u *AsyncUnitOfWork) Context() *ProcessingContext { return u.ctx }

// On registers action for phase. See ProcessingContext.On.
func (u *AsyncUnitOfWork) On(phase Phase, action Action) error {
	return u.ctx.On(phase, action)
}

// OnError registers a terminal error hook. See ProcessingContext.OnError.
func (u *AsyncUnitOfWork) OnError(hook ErrorHook) {
	u.ctx.OnError(hook)
}

// WhenComplete registers a terminal completion hook. See
// ProcessingContext.WhenComplete.
func (u *AsyncUnitOfWork) WhenComplete(hook CompletionHook) {
	u.ctx.WhenComplete(hook)
}

// Commit starts execution. See ProcessingContext.Commit.
func (u *AsyncUnitOfWork) Commit() *Future[struct{}] {
	return u.ctx.Commit()
}

// Execute is an alias for Commit, matching the façade's external name for
// starting a unit of work.
func (u *AsyncUnitOfWork) Execute() *Future[struct{}] {
	return u.Commit()
}

// ExecuteWithResult registers invocation on the Invocation phase, then
// calls Execute. The returned future yields invocation's own return value
// once execution succeeds, or execution's failure otherwise — including
// the failure of invocation itself, or of any later phase.
//
// A free function rather than a method: Go methods cannot carry their own
// type parameter, and R is fixed only at the call site.
func ExecuteWithResult[R any](u *AsyncUnitOfWork, invocation func(ctx *ProcessingContext) (R, error)) *Future[R] {
	var result R
	if err := u.On(Invocation, func(ctx *ProcessingContext) error {
		v, err := invocation(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	}); err != nil {
		out := newFuture[R]()
		var zero R
		out.complete(zero, err)
		return out
	}

	out := newFuture[R]()
	go func() {
		if _, err := u.Execute().Get(); err != nil {
			var zero R
			out.complete(zero, err)
			return
		}
		out.complete(result, nil)
	}()
	return out
}

// Resources returns the ResourceBag scoped to this unit of work.
func (u *AsyncUnitOfWork) Resources() *ResourceBag { return u.ctx.Resources() }

// Identifier returns the unit of work's identifier.
func (u *AsyncUnitOfWork) Identifier() string { return u.ctx.Identifier() }

// Status returns the current commit status.
func (u *AsyncUnitOfWork) Status() Status { return u.ctx.Status() }
