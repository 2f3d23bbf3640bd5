package lifecycle

import "sort"

// Action is a handler bound to a phase. It runs on the context's work
// scheduler and reports success or failure; the engine wraps it (see safe
// in context.go) so a panic or returned error is converted uniformly into
// the recorded (phase, cause) failure.
type Action func(ctx *ProcessingContext) error

type phaseHandler struct {
	phase  Phase
	action Action
}

// phaseBucket is the set of all handlers registered for phases that share
// an Order: ties execute concurrently, in the same bucket.
type phaseBucket struct {
	order   int32
	entries []phaseHandler
}

// phaseBuckets is the ordered map of pending handlers, kept sorted by
// Phase.Order ascending, with atomic (mutex-guarded) bucket removal: a
// bucket is gone from the map before its handlers start, so a late
// registration for that phase is rejected rather than silently joining a
// bucket that already started running.
type phaseBuckets struct {
	buckets []*phaseBucket
}

// register inserts a handler into the bucket for phase.Order, creating the
// bucket if needed. Buckets are kept sorted ascending by order.
func (m *phaseBuckets) register(phase Phase, action Action) {
	i := sort.Search(len(m.buckets), func(i int) bool {
		return m.buckets[i].order >= phase.Order
	})
	if i < len(m.buckets) && m.buckets[i].order == phase.Order {
		m.buckets[i].entries = append(m.buckets[i].entries, phaseHandler{phase: phase, action: action})
		return
	}
	b := &phaseBucket{order: phase.Order, entries: []phaseHandler{{phase: phase, action: action}}}
	m.buckets = append(m.buckets, nil)
	copy(m.buckets[i+1:], m.buckets[i:])
	m.buckets[i] = b
}

// popLowest removes and returns the lowest-ordered bucket, or nil if the
// map is empty.
func (m *phaseBuckets) popLowest() *phaseBucket {
	if len(m.buckets) == 0 {
		return nil
	}
	b := m.buckets[0]
	m.buckets = m.buckets[1:]
	return b
}

func (m *phaseBuckets) empty() bool {
	return len(m.buckets) == 0
}

// representativePhase returns the phase used for current_phase bookkeeping:
// the first handler's phase registered in the bucket. Only Order matters
// for the invariant-1 check; Name is informational.
func (b *phaseBucket) representativePhase() Phase {
	return b.entries[0].phase
}
