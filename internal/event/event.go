package event

import "github.com/dshills/stormbus/internal/event/kind"

// Event is the capability every submitted message must provide: report
// the dense kind id assigned to its concrete type during setup.
//
// Concrete event types are pointer types whose Kind method returns a
// package-level id captured at registration without touching the
// receiver, for example:
//
//	var tickKind kind.ID // assigned via Registry.Register during setup
//
//	type Tick struct{ At time.Time }
//
//	func (*Tick) Kind() kind.ID { return tickKind }
//
// The nil-receiver property matters: typed subscription resolves the
// kind id from the zero value of the event type parameter.
//
// Ownership of an event transfers to the bus at Submit. After every
// processor holding the containing batch has finished dispatching it,
// the event is released exactly once through the bus's release hook
// (if one is configured) and must not be retained by handlers beyond
// that point.
type Event interface {
	Kind() kind.ID
}
