package eventprocessing

import "sync"

type ackState byte

const (
	ackStateNone ackState = iota
	ackStateAcked
	ackStateNacked
)

// Envelope carries a single event's raw payload and stream position
// through the processor. Ack and Nack are mutually exclusive and
// idempotent: once either has been called, later calls to either method
// are no-ops that report the outcome already reached.
type Envelope struct {
	StreamID string
	Token    string
	Payload  []byte

	mu    sync.Mutex
	state ackState
	ack   func()
	nack  func(error)
}

// NewEnvelope creates an Envelope for a single inbound event. ack and nack
// may be nil, in which case Ack/Nack are inert no-ops.
func NewEnvelope(streamID, token string, payload []byte, ack func(), nack func(error)) *Envelope {
	return &Envelope{
		StreamID: streamID,
		Token:    token,
		Payload:  payload,
		ack:      ack,
		nack:     nack,
	}
}

// Ack reports successful processing. Returns true if the envelope is now
// (or was already) acked.
func (e *Envelope) Ack() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case ackStateAcked:
		return true
	case ackStateNacked:
		return false
	}
	e.state = ackStateAcked
	if e.ack != nil {
		e.ack()
	}
	return true
}

// Nack reports a processing failure with cause. Returns true if the
// envelope is now (or was already) nacked.
func (e *Envelope) Nack(cause error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case ackStateNacked:
		return true
	case ackStateAcked:
		return false
	}
	e.state = ackStateNacked
	if e.nack != nil {
		e.nack(cause)
	}
	return true
}
