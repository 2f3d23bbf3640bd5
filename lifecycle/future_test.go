package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFuture_GetBlocksUntilComplete(t *testing.T) {
	fut := newFuture[int]()
	done := make(chan struct{})
	go func() {
		v, err := fut.Get()
		if err != nil || v != 7 {
			t.Errorf("got (%d, %v), want (7, nil)", v, err)
		}
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	fut.complete(7, nil)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Get never returned after complete")
	}
}

func TestFuture_WaitRespectsContextDeadline(t *testing.T) {
	fut := newFuture[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := fut.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestFuture_DoneChannelClosesOnComplete(t *testing.T) {
	fut := newFuture[int]()
	fut.complete(1, nil)
	select {
	case <-fut.Done():
	default:
		t.Error("expected Done() to be closed after complete")
	}
}
