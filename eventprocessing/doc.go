// Package eventprocessing wires lifecycle.AsyncUnitOfWork into an event
// processor: a collaborator that invokes a handler for an inbound Envelope
// during the invocation phase, advances the stream's consumption token
// during the prepare-commit phase once the handler has succeeded,
// acknowledges the envelope during the commit phase, and nacks and
// enqueues the envelope to a dead-letter queue if anything along the way
// fails.
//
// TokenStore, DeadLetterQueue, and Marshaler are narrow contracts with
// in-memory stand-ins (memory.go) for tests and local development; a real
// deployment supplies its own backed by a database, broker, or file.
package eventprocessing
