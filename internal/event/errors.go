package event

import "errors"

// Sentinel errors for the bus.
var (
	// ErrQueueFull is returned by Submit when the bounded ingestion
	// queue rejects an event. The sequence number is consumed; the
	// event is not enqueued and ownership stays with the caller.
	ErrQueueFull = errors.New("event: ingestion queue is full")

	// ErrDrainInProgress is returned by Drain when another drain cycle
	// is still running. Drain must never overlap itself.
	ErrDrainInProgress = errors.New("event: drain already in progress")

	// ErrNilEvent is returned when Submit is called with a nil event.
	ErrNilEvent = errors.New("event: event cannot be nil")

	// ErrNilHandler is returned when a nil handler function is
	// subscribed.
	ErrNilHandler = errors.New("event: handler cannot be nil")

	// ErrNilListener is returned when a nil listener identity is
	// subscribed. Unsubscription is keyed by listener identity, so a
	// nil listener could never be removed.
	ErrNilListener = errors.New("event: listener cannot be nil")

	// ErrUnknownKind is returned when a subscription names a kind id
	// outside the frozen registry's id space.
	ErrUnknownKind = errors.New("event: unknown event kind")
)
