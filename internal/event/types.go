package event

import "github.com/dshills/stormbus/internal/event/kind"

// ProcessorID is a stable handle for a processor created on a Bus.
// Ids are dense, assigned in creation order, and valid for the bus
// lifetime.
type ProcessorID int

// HandlerFunc is an untyped event handler. Handlers receive events of
// the kind they subscribed to, in global sequence order, and are
// responsible for their own failure handling: no error or panic path
// crosses the dispatch boundary.
type HandlerFunc func(Event)

// handlerEntry binds one listener instance, one callback, and the
// captured kind id. Entries live in exactly one processor's table row,
// in registration order, and are removed by listener identity.
type handlerEntry struct {
	kind     kind.ID
	listener any
	invoke   HandlerFunc
}

// Stats contains bus counters. All values are cumulative since bus
// creation.
type Stats struct {
	// EventsSubmitted is the number of events accepted into the
	// ingestion queue.
	EventsSubmitted uint64

	// SubmitRejected is the number of submissions rejected because the
	// ingestion queue was full.
	SubmitRejected uint64

	// EventsDrained is the number of events moved out of the ingestion
	// queue by drain cycles.
	EventsDrained uint64

	// DrainCycles is the number of Drain calls that performed work.
	DrainCycles uint64

	// BatchesPublished is the number of broadcast batches appended to
	// processor FIFOs.
	BatchesPublished uint64

	// EventsDispatched is the number of event deliveries performed by
	// Dispatch, summed across processors (one per event per processor).
	EventsDispatched uint64

	// HandlerInvocations is the number of handler callbacks invoked.
	HandlerInvocations uint64

	// Processors is the current number of processors.
	Processors int
}
