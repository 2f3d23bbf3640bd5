package lifecycle

import "testing"

func noop(*ProcessingContext) error { return nil }

func TestPhaseBuckets_PopLowestOrdersByOrder(t *testing.T) {
	var buckets phaseBuckets
	buckets.register(AfterCommit, noop)
	buckets.register(Invocation, noop)
	buckets.register(PrepareCommit, noop)

	var gotOrder []int32
	for !buckets.empty() {
		gotOrder = append(gotOrder, buckets.popLowest().order)
	}

	want := []int32{Invocation.Order, PrepareCommit.Order, AfterCommit.Order}
	if len(gotOrder) != len(want) {
		t.Fatalf("got %v, want %v", gotOrder, want)
	}
	for i := range want {
		if gotOrder[i] != want[i] {
			t.Errorf("position %d: got %d, want %d", i, gotOrder[i], want[i])
		}
	}
}

func TestPhaseBuckets_TiesShareABucket(t *testing.T) {
	var buckets phaseBuckets
	custom := NewPhase("VALIDATE", Invocation.Order)
	buckets.register(Invocation, noop)
	buckets.register(custom, noop)
	buckets.register(PrepareCommit, noop)

	bucket := buckets.popLowest()
	if len(bucket.entries) != 2 {
		t.Fatalf("expected the two same-order phases to merge into one bucket, got %d entries", len(bucket.entries))
	}

	next := buckets.popLowest()
	if next.order != PrepareCommit.Order {
		t.Errorf("expected PrepareCommit's bucket next, got order %d", next.order)
	}
}

func TestPhaseBuckets_Empty(t *testing.T) {
	var buckets phaseBuckets
	if !buckets.empty() {
		t.Error("expected a freshly zero-valued phaseBuckets to be empty")
	}
	if buckets.popLowest() != nil {
		t.Error("expected popLowest on an empty map to return nil")
	}
}
