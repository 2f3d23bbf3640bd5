package eventprocessing

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEventProcessor_SuccessAdvancesTokenAndAcks(t *testing.T) {
	tokens := NewMemoryTokenStore()
	dlq := NewMemoryDeadLetterQueue()

	var handled []byte
	handler := func(_ context.Context, env *Envelope) error {
		handled = env.Payload
		return nil
	}

	p := New(handler, tokens, dlq, nil, DefaultConfig())

	var acked bool
	env := NewEnvelope("orders-1", "42", []byte(`{"id":1}`), func() { acked = true }, func(error) {})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Process(ctx, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(handled) != `{"id":1}` {
		t.Errorf("handler did not see the expected payload, got %q", handled)
	}
	if !acked {
		t.Error("expected envelope to be acked")
	}
	token, ok := tokens.Token("orders-1")
	if !ok || token != "42" {
		t.Errorf("expected token advanced to 42, got (%q, %v)", token, ok)
	}
	if len(dlq.Items()) != 0 {
		t.Errorf("expected no dead letters, got %d", len(dlq.Items()))
	}
}

func TestEventProcessor_HandlerFailureDeadLettersAndNacks(t *testing.T) {
	tokens := NewMemoryTokenStore()
	dlq := NewMemoryDeadLetterQueue()

	cause := errors.New("invalid payload")
	handler := func(context.Context, *Envelope) error { return cause }

	p := New(handler, tokens, dlq, nil, DefaultConfig())

	var nackedWith error
	env := NewEnvelope("orders-1", "7", nil, func() {}, func(err error) { nackedWith = err })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Process(ctx, env); err == nil {
		t.Fatal("expected an error")
	}

	if !errors.Is(nackedWith, cause) {
		t.Errorf("expected nack with the handler's cause, got %v", nackedWith)
	}
	if _, ok := tokens.Token("orders-1"); ok {
		t.Error("token must not advance on a failed handler")
	}

	items := dlq.Items()
	if len(items) != 1 {
		t.Fatalf("expected exactly one dead letter, got %d", len(items))
	}
	if !errors.Is(items[0].Cause, cause) {
		t.Errorf("expected dead letter cause to match, got %v", items[0].Cause)
	}
}

func TestEventProcessor_TokenAdvanceFailureAlsoDeadLetters(t *testing.T) {
	dlq := NewMemoryDeadLetterQueue()
	failingTokens := tokenStoreFunc(func(context.Context, string, string) error {
		return errors.New("store unavailable")
	})

	handler := func(context.Context, *Envelope) error { return nil }
	p := New(handler, failingTokens, dlq, nil, DefaultConfig())

	env := NewEnvelope("orders-2", "1", nil, func() {}, func(error) {})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.Process(ctx, env); err == nil {
		t.Fatal("expected an error when the token store fails")
	}
	if len(dlq.Items()) != 1 {
		t.Errorf("expected the envelope to be dead-lettered, got %d items", len(dlq.Items()))
	}
}

type tokenStoreFunc func(ctx context.Context, streamID, token string) error

func (f tokenStoreFunc) Advance(ctx context.Context, streamID, token string) error {
	return f(ctx, streamID, token)
}
