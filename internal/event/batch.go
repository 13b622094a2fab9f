package event

import "sync/atomic"

// batch is an owning, reference-counted container for one drain cycle's
// globally-ordered events. Every processor appended the batch holds one
// reference; the events are released exactly once, when the last
// reference drops.
type batch struct {
	events  []Event
	refs    atomic.Int32
	release func(Event)
}

// newBatch creates a batch held by `holders` processors. With zero
// holders the events have no possible consumer and are released
// immediately.
func newBatch(events []Event, holders int, release func(Event)) *batch {
	b := &batch{events: events, release: release}
	b.refs.Store(int32(holders))
	if holders == 0 {
		b.free()
	}
	return b
}

// unref drops one processor reference, releasing the events when it was
// the last.
func (b *batch) unref() {
	if b.refs.Add(-1) == 0 {
		b.free()
	}
}

func (b *batch) free() {
	if b.release != nil {
		for _, ev := range b.events {
			b.release(ev)
		}
	}
	b.events = nil
}
