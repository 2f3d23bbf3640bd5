package eventprocessing

import (
	"context"
	"fmt"

	"github.com/omidp/axon-go/lifecycle"
	"github.com/omidp/axon-go/scheduler"
)

// EventProcessor drives a single event's Envelope through a unit of work:
// the handler runs during lifecycle.Invocation, the stream token advances
// during lifecycle.PrepareCommit once the handler has succeeded, the
// envelope is acknowledged during lifecycle.Commit, and any failure along
// the way routes the envelope to the DeadLetterQueue via an error hook.
type EventProcessor struct {
	handler    Handler
	tokens     TokenStore
	deadLetter DeadLetterQueue
	logger     lifecycle.Logger
	scheduler  lifecycle.Scheduler
	cfg        Config
}

// New creates an EventProcessor. handler and tokens are required; a nil
// DeadLetterQueue discards failed envelopes instead of routing them
// anywhere, and a nil Logger discards log output.
func New(handler Handler, tokens TokenStore, deadLetter DeadLetterQueue, logger lifecycle.Logger, cfg Config) *EventProcessor {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &EventProcessor{
		handler:    handler,
		tokens:     tokens,
		deadLetter: deadLetter,
		logger:     logger,
		scheduler:  scheduler.NewPool(int64(cfg.Concurrency)),
		cfg:        cfg,
	}
}

// Process runs one envelope to completion and blocks until it has been
// acknowledged, nacked, or ctx is done. A failing handler, a failing
// token advance, or a panic all produce the same outcome: the envelope is
// nacked, dead-lettered, and Process returns the recorded cause.
func (p *EventProcessor) Process(ctx context.Context, env *Envelope) error {
	if p.cfg.CommitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.CommitTimeout)
		defer cancel()
	}

	uow := lifecycle.NewAsyncUnitOfWork(
		lifecycle.WithIdentifier(env.StreamID+"/"+env.Token),
		lifecycle.WithScheduler(p.scheduler),
		lifecycle.WithLogger(p.logger),
	)

	if err := uow.On(lifecycle.Invocation, func(*lifecycle.ProcessingContext) error {
		return p.handler(ctx, env)
	}); err != nil {
		return err
	}

	if err := uow.On(lifecycle.PrepareCommit, func(*lifecycle.ProcessingContext) error {
		return p.tokens.Advance(ctx, env.StreamID, env.Token)
	}); err != nil {
		return err
	}

	if err := uow.On(lifecycle.Commit, func(*lifecycle.ProcessingContext) error {
		env.Ack()
		return nil
	}); err != nil {
		return err
	}

	hookDone := make(chan struct{})
	uow.OnError(func(_ *lifecycle.ProcessingContext, phase lifecycle.Phase, cause error) {
		defer close(hookDone)
		env.Nack(cause)
		if p.deadLetter == nil {
			return
		}
		if err := p.deadLetter.Enqueue(ctx, env, cause); err != nil && p.logger != nil {
			p.logger.Warn("failed to enqueue dead letter",
				"stream_id", env.StreamID, "phase", phase.String(), "error", err)
		}
	})

	_, err := uow.Commit().Wait(ctx)
	if err != nil {
		// The error hook is dispatched on the scheduler after the commit
		// future resolves; wait for it so the envelope is nacked and
		// dead-lettered before Process returns.
		select {
		case <-hookDone:
		case <-ctx.Done():
		}
		return fmt.Errorf("eventprocessing: processing %s/%s: %w", env.StreamID, env.Token, err)
	}
	return nil
}

// Run drains envelopes from in, calling Process for each, until in closes
// or ctx is done. Errors are logged, not returned — Process already
// routed the envelope to the DeadLetterQueue before reporting one.
func (p *EventProcessor) Run(ctx context.Context, in <-chan *Envelope) {
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-in:
			if !ok {
				return
			}
			if err := p.Process(ctx, env); err != nil && p.logger != nil {
				p.logger.Warn("envelope processing failed", "stream_id", env.StreamID, "error", err)
			}
		}
	}
}
