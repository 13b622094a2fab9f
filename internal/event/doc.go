// Package event provides the Stormbus multi-processor event bus.
//
// The bus accepts events from any number of unsynchronized producer
// goroutines, reconstructs a single global order, and replays the ordered
// stream against multiple independent consumer processors, each with its
// own handler table.
//
// # Architecture
//
//	producers ──► Bus.Submit ──► ingestion queue (lock-free, sequence-tagged)
//	                                   │
//	                             Bus.Drain (resequencer)
//	                 bulk dequeue → parallel radix sort → broadcast batch
//	                                   │
//	           ┌───────────────────────┼───────────────────────┐
//	           ▼                       ▼                       ▼
//	   processor 0 FIFO        processor 1 FIFO        processor N FIFO
//	           │                       │                       │
//	    Bus.Dispatch(0)         Bus.Dispatch(1)         Bus.Dispatch(N)
//	           │                       │                       │
//	   handler table row        handler table row       handler table row
//	     (by kind id)             (by kind id)            (by kind id)
//
// Every submission claims a sequence number from an atomic counter, so
// the global order is fixed at submit time across all producers even
// though the lock-free queue dequeues in arbitrary order. Drain restores
// that order before any processor sees the batch; each batch is shared by
// every processor and its events are released exactly once, when the last
// processor finishes dispatching it.
//
// # Kind ids
//
// Events are addressed by dense integer kind ids assigned through a
// kind.Registry during setup (see the kind subpackage). The registry is
// frozen when the bus is created; handler tables are plain slices indexed
// by kind id, so dispatch performs no map or type lookups.
//
// # Basic usage
//
//	reg := kind.NewRegistry()
//	tickKind := reg.Register("demo.tick")
//
//	bus := event.New(reg)
//	p0 := bus.CreateProcessor()
//
//	counter := &TickCounter{}
//	event.Subscribe(bus, p0, counter, counter.HandleTick)
//
//	bus.Submit(p0, &Tick{})
//	bus.Drain()       // one resequencing cycle
//	bus.Dispatch(p0)  // replay on processor p0
//
// # Threading model
//
// Submit is safe from unboundedly many goroutines. Drain is safe
// concurrently with Submit and with every processor's Dispatch, but not
// with itself (a second concurrent call fails with ErrDrainInProgress).
// Each processor's Dispatch is intended to run on its own worker
// goroutine, concurrently with other processors' Dispatch.
//
// Handler tables are deliberately unlocked: Subscribe and Unsubscribe for
// a given processor must be externally serialized against that same
// processor's Dispatch. Mutating a table while its processor dispatches
// is undefined behavior, not a supported race-free feature.
//
// # Subpackages
//
//   - kind: dense event kind id registry
//   - ingest: lock-free sequence-tagged ingestion queue
//   - radix: parallel resequencing sort
//   - events: concrete event type definitions for the demo binary
package event
