package event

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/stormbus/internal/event/ingest"
	"github.com/dshills/stormbus/internal/event/kind"
	"github.com/dshills/stormbus/internal/event/radix"
)

// Bus is the multi-processor event bus manager. It owns the processor
// collection, the sequence-tagged ingestion queue, and the resequencer.
//
// A Bus is created with a kind registry that is frozen on construction;
// every processor's handler table is sized by the frozen kind count.
type Bus struct {
	registry *kind.Registry
	kinds    int

	// mu guards growth of the processor collection. CreateProcessor
	// takes it exclusively; Submit, Drain, Subscribe and Unsubscribe
	// take it shared.
	mu         sync.RWMutex
	processors []*processor

	queue *ingest.Queue[Event]

	// draining enforces the single-drainer contract; drainBuf is
	// reused across cycles and only touched while draining is held.
	draining atomic.Bool
	drainBuf []ingest.Entry[Event]

	logger  *zap.Logger
	metrics *metrics
	release func(Event)

	eventsSubmitted    atomic.Uint64
	submitRejected     atomic.Uint64
	eventsDrained      atomic.Uint64
	drainCycles        atomic.Uint64
	batchesPublished   atomic.Uint64
	eventsDispatched   atomic.Uint64
	handlerInvocations atomic.Uint64
}

// New creates a bus over the given kind registry and freezes it: no
// kind may register once a bus exists to dispatch it.
func New(registry *kind.Registry, opts ...Option) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	registry.Freeze()

	return &Bus{
		registry: registry,
		kinds:    registry.Count(),
		queue:    ingest.NewQueue[Event](config.queueCapacity),
		logger:   config.logger,
		metrics:  newMetrics(config.registerer),
		release:  config.releaseHook,
	}
}

// CreateProcessor appends a new processor and returns its stable id.
// Processors are never destroyed; ids stay valid for the bus lifetime.
func (b *Bus) CreateProcessor() ProcessorID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := ProcessorID(len(b.processors))
	b.processors = append(b.processors, newProcessor(id, b.kinds))

	b.logger.Debug("processor created", zap.Int("processor", int(id)))
	return id
}

// ProcessorCount returns the current number of processors.
func (b *Bus) ProcessorCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.processors)
}

// Submit transfers ownership of the event to the bus, tagging it with
// the next global sequence number and enqueueing it for the
// resequencer. The submitting processor id only identifies the producer
// path; the event is broadcast to every processor at drain time.
//
// Submit returns the assigned sequence number. On ErrQueueFull the
// sequence is consumed but ownership stays with the caller. Submitting
// against an unknown processor id, or with a kind id outside the frozen
// registry, is a precondition violation and panics.
func (b *Bus) Submit(id ProcessorID, ev Event) (uint64, error) {
	if ev == nil {
		return 0, ErrNilEvent
	}
	b.processor(id) // validate the producer path

	if k := ev.Kind(); k < 0 || int(k) >= b.kinds {
		panic(fmt.Sprintf("event: Submit with unregistered kind id %d (registry has %d kinds)", k, b.kinds))
	}

	seq, err := b.queue.Submit(ev)
	if err != nil {
		b.submitRejected.Add(1)
		b.metrics.submitRejectedInc()
		b.logger.Warn("submission rejected, queue full",
			zap.Uint64("seq", seq),
			zap.Int("processor", int(id)))
		return seq, ErrQueueFull
	}

	b.eventsSubmitted.Add(1)
	b.metrics.submitted()
	return seq, nil
}

// Drain runs one resequencing cycle: best-effort bulk dequeue of the
// pending entries, parallel radix sort by sequence number, and
// broadcast of the resulting batch to every processor's FIFO. It
// returns the number of events moved.
//
// Drain may legitimately move fewer events than were submitted when
// racing producers are not yet visible; the next cycle picks them up.
// A drain with nothing pending does no work and leaves every
// processor's FIFO untouched. Drain is safe concurrently with Submit
// and Dispatch but not with itself: an overlapping call fails with
// ErrDrainInProgress.
func (b *Bus) Drain() (int, error) {
	if !b.draining.CompareAndSwap(false, true) {
		return 0, ErrDrainInProgress
	}
	defer b.draining.Store(false)

	b.drainBuf = b.queue.Drain(b.drainBuf)
	entries := b.drainBuf
	if len(entries) == 0 {
		return 0, nil
	}

	sorted := radix.Sort(entries, func(e ingest.Entry[Event]) uint64 { return e.Seq })
	events := make([]Event, len(sorted))
	for i, e := range sorted {
		events[i] = e.Item
	}

	b.mu.RLock()
	procs := make([]*processor, len(b.processors))
	copy(procs, b.processors)
	b.mu.RUnlock()

	bt := newBatch(events, len(procs), b.release)
	for _, p := range procs {
		p.enqueue(bt)
	}

	b.eventsDrained.Add(uint64(len(events)))
	b.drainCycles.Add(1)
	b.batchesPublished.Add(uint64(len(procs)))
	b.metrics.drained(len(events), len(procs))

	b.logger.Debug("drain cycle",
		zap.Int("events", len(events)),
		zap.Int("processors", len(procs)))
	return len(events), nil
}

// Dispatch drains processor id's pending FIFO in arrival order,
// invoking every registered handler for each event in global sequence
// order. It returns the number of events processed on that processor.
//
// Dispatch is intended to run on the processor's own worker goroutine,
// concurrently with other processors' Dispatch, with Submit, and with
// Drain. It must not run concurrently with Subscribe/Unsubscribe for
// the same processor.
func (b *Bus) Dispatch(id ProcessorID) int {
	p := b.processor(id)

	events, invocations := p.dispatch()
	if events > 0 {
		b.eventsDispatched.Add(uint64(events))
		b.handlerInvocations.Add(uint64(invocations))
		b.metrics.dispatched(events, invocations)
	}
	return events
}

// SubscribeFunc appends a handler entry for kind k to processor id's
// table, at the tail of the row: handlers run in registration order.
// The listener identity keys later removal and must be a comparable
// value, conventionally a pointer to the subscribing instance.
//
// See the package documentation for the mutation/dispatch contract.
func (b *Bus) SubscribeFunc(id ProcessorID, k kind.ID, listener any, fn HandlerFunc) error {
	if listener == nil {
		return ErrNilListener
	}
	if fn == nil {
		return ErrNilHandler
	}
	if k < 0 || int(k) >= b.kinds {
		return ErrUnknownKind
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	p := b.processorLocked(id)
	p.subscribe(handlerEntry{kind: k, listener: listener, invoke: fn})
	return nil
}

// Unsubscribe removes every handler entry on processor id whose
// listener identity matches, leaving other listeners' entries and
// their relative order intact. Unsubscribing a listener with no
// entries is a silent no-op. It returns the number of entries removed.
func (b *Bus) Unsubscribe(id ProcessorID, listener any) int {
	if listener == nil {
		return 0
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.processorLocked(id).unsubscribe(listener)
}

// PendingBatches returns processor id's current FIFO depth.
func (b *Bus) PendingBatches(id ProcessorID) int {
	return b.processor(id).pendingBatches()
}

// Pending returns the number of submitted events not yet drained.
func (b *Bus) Pending() uint64 {
	return b.queue.Pending()
}

// Registry returns the bus's (frozen) kind registry.
func (b *Bus) Registry() *kind.Registry {
	return b.registry
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsSubmitted:    b.eventsSubmitted.Load(),
		SubmitRejected:     b.submitRejected.Load(),
		EventsDrained:      b.eventsDrained.Load(),
		DrainCycles:        b.drainCycles.Load(),
		BatchesPublished:   b.batchesPublished.Load(),
		EventsDispatched:   b.eventsDispatched.Load(),
		HandlerInvocations: b.handlerInvocations.Load(),
		Processors:         b.ProcessorCount(),
	}
}

// processor resolves a processor id under the shared lock. An unknown
// id is a precondition violation and panics.
func (b *Bus) processor(id ProcessorID) *processor {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.processorLocked(id)
}

// processorLocked resolves a processor id; callers hold b.mu.
func (b *Bus) processorLocked(id ProcessorID) *processor {
	if id < 0 || int(id) >= len(b.processors) {
		panic(fmt.Sprintf("event: unknown processor id %d (have %d)", id, len(b.processors)))
	}
	return b.processors[id]
}

// Subscribe registers fn on processor id for the event type E, resolving
// the kind id from E's zero value (concrete event types implement Kind
// on the pointer receiver without touching fields, so a nil receiver is
// fine). The handler receives already-asserted events of type E.
func Subscribe[E Event](b *Bus, id ProcessorID, listener any, fn func(E)) error {
	if fn == nil {
		return ErrNilHandler
	}

	var zero E
	return b.SubscribeFunc(id, zero.Kind(), listener, func(ev Event) {
		fn(ev.(E))
	})
}
