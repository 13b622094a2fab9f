package ingest

import (
	"errors"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// ErrFull is returned by Submit when the bounded ring rejects an entry.
var ErrFull = errors.New("ingest: queue is full")

// DefaultCapacity is the ring capacity used when none is configured.
const DefaultCapacity = 1 << 16

// Entry pairs a submitted item with its global sequence number.
type Entry[T any] struct {
	Item T
	Seq  uint64
}

// Queue is a sequence-tagged, lock-free MPMC ingestion queue.
type Queue[T any] struct {
	next     atomic.Uint64 // next sequence to allocate
	drained  atomic.Uint64 // entries handed out by Drain; written by the drainer only
	rejected atomic.Uint64 // sequences allocated but never enqueued (ring full)

	ring *xsync.MPMCQueueOf[Entry[T]]
}

// NewQueue creates a queue with the given ring capacity.
// Capacities below one fall back to DefaultCapacity.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Queue[T]{ring: xsync.NewMPMCQueueOf[Entry[T]](capacity)}
}

// Submit claims the next sequence number and enqueues the item tagged
// with it. It never blocks. On ErrFull the sequence number is consumed
// but the item is not enqueued; sequences are unique, not contiguous in
// the drained stream after a rejection.
func (q *Queue[T]) Submit(item T) (uint64, error) {
	seq := q.next.Add(1) - 1
	if !q.ring.TryEnqueue(Entry[T]{Item: item, Seq: seq}) {
		q.rejected.Add(1)
		return seq, ErrFull
	}
	return seq, nil
}

// Drain bulk-dequeues up to Pending() entries, appending them to dst
// (dst is reset first, so a buffer can be reused across cycles). Fewer
// entries than Pending() may be returned when concurrent submissions are
// not yet visible in the ring.
//
// Drain must not be called concurrently with itself.
func (q *Queue[T]) Drain(dst []Entry[T]) []Entry[T] {
	dst = dst[:0]

	want := q.Pending()
	for uint64(len(dst)) < want {
		e, ok := q.ring.TryDequeue()
		if !ok {
			break
		}
		dst = append(dst, e)
	}

	q.drained.Add(uint64(len(dst)))
	return dst
}

// Allocated returns the number of sequence numbers handed out so far.
func (q *Queue[T]) Allocated() uint64 {
	return q.next.Load()
}

// Pending returns a snapshot of the number of entries submitted but not
// yet drained. The value is momentarily stale under concurrent Submit.
func (q *Queue[T]) Pending() uint64 {
	// Load the subtrahends before the allocation counter so the
	// difference can never go negative under concurrent submits.
	drained := q.drained.Load()
	rejected := q.rejected.Load()
	return q.next.Load() - drained - rejected
}
