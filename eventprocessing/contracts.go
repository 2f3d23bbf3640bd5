package eventprocessing

import "context"

// TokenStore records how far a stream has been consumed. Advance is
// called once per successfully handled event, during the prepare-commit phase,
// so a crash between invocation and commit redelivers the event rather
// than silently skipping it.
type TokenStore interface {
	Advance(ctx context.Context, streamID, token string) error
}

// DeadLetterQueue receives envelopes whose handler failed, along with the
// recorded cause, so they can be inspected or replayed out of band.
type DeadLetterQueue interface {
	Enqueue(ctx context.Context, env *Envelope, cause error) error
}

// Marshaler decodes an envelope's raw payload into a typed event. Handler
// implementations are free to ignore it and parse Envelope.Payload
// directly; it exists for handlers that want the same decode/props split
// used elsewhere in the ecosystem for commands and events.
type Marshaler interface {
	Unmarshal(data []byte, v any) error
}

// Handler processes a single event's payload. A non-nil error fails the
// envelope: the processor nacks it, skips the token advance, and routes
// it to the DeadLetterQueue.
type Handler func(ctx context.Context, env *Envelope) error
