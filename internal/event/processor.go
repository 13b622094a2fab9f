package event

import "sync"

// processor is one independent consumer replica: a handler table sized
// by the frozen kind-id space and a FIFO of pending broadcast batches.
//
// The pending FIFO is internally locked so the resequencer may append
// while the processor's worker goroutine dispatches. The handler table
// is not: subscribe/unsubscribe must be externally serialized against
// this processor's dispatch (see the package documentation).
type processor struct {
	id ProcessorID

	// handlers is indexed by kind id; each row is an insertion-ordered
	// list of handler entries.
	handlers [][]handlerEntry

	mu      sync.Mutex
	pending []*batch
}

func newProcessor(id ProcessorID, kinds int) *processor {
	return &processor{
		id:       id,
		handlers: make([][]handlerEntry, kinds),
	}
}

// enqueue appends a broadcast batch to the pending FIFO.
func (p *processor) enqueue(b *batch) {
	p.mu.Lock()
	p.pending = append(p.pending, b)
	p.mu.Unlock()
}

// dequeue pops the oldest pending batch, or nil when the FIFO is empty.
func (p *processor) dequeue() *batch {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pending) == 0 {
		return nil
	}
	b := p.pending[0]
	p.pending[0] = nil
	p.pending = p.pending[1:]
	return b
}

// pendingBatches returns the current FIFO depth.
func (p *processor) pendingBatches() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.pending)
}

// dispatch drains the pending FIFO in arrival order, invoking every
// registered handler for each event in sorted sequence order. It
// returns the number of events processed and handler callbacks invoked,
// and drops this processor's batch references as it goes.
func (p *processor) dispatch() (events, invocations int) {
	for {
		b := p.dequeue()
		if b == nil {
			return events, invocations
		}

		for _, ev := range b.events {
			for _, h := range p.handlers[ev.Kind()] {
				h.invoke(ev)
				invocations++
			}
			events++
		}

		b.unref()
	}
}

// subscribe appends an entry to the tail of its kind's row.
func (p *processor) subscribe(e handlerEntry) {
	p.handlers[e.kind] = append(p.handlers[e.kind], e)
}

// unsubscribe removes every entry whose listener identity matches,
// across all rows, preserving the relative order of survivors. It
// returns the number of entries removed; zero means the listener had no
// subscriptions on this processor.
func (p *processor) unsubscribe(listener any) int {
	removed := 0
	for k, row := range p.handlers {
		kept := row[:0]
		for _, h := range row {
			if h.listener == listener {
				removed++
				continue
			}
			kept = append(kept, h)
		}
		// Clear the tail so dropped entries don't pin their closures.
		for i := len(kept); i < len(row); i++ {
			row[i] = handlerEntry{}
		}
		p.handlers[k] = kept
	}
	return removed
}
