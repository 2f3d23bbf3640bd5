package eventprocessing

import (
	"errors"
	"testing"
)

func TestEnvelope_AckThenNackIsRejected(t *testing.T) {
	var acked, nacked bool
	env := NewEnvelope("s", "1", nil, func() { acked = true }, func(error) { nacked = true })

	if !env.Ack() {
		t.Fatal("expected first Ack to succeed")
	}
	if env.Nack(errors.New("too late")) {
		t.Error("expected Nack after Ack to be rejected")
	}
	if !acked || nacked {
		t.Errorf("got acked=%v nacked=%v, want acked=true nacked=false", acked, nacked)
	}
}

func TestEnvelope_NackThenAckIsRejected(t *testing.T) {
	var acked, nacked bool
	env := NewEnvelope("s", "1", nil, func() { acked = true }, func(error) { nacked = true })

	if !env.Nack(errors.New("boom")) {
		t.Fatal("expected first Nack to succeed")
	}
	if env.Ack() {
		t.Error("expected Ack after Nack to be rejected")
	}
	if acked || !nacked {
		t.Errorf("got acked=%v nacked=%v, want acked=false nacked=true", acked, nacked)
	}
}

func TestEnvelope_AckIsIdempotent(t *testing.T) {
	calls := 0
	env := NewEnvelope("s", "1", nil, func() { calls++ }, nil)
	env.Ack()
	env.Ack()
	if calls != 1 {
		t.Errorf("expected the ack callback to run once, ran %d times", calls)
	}
}
