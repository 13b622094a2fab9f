// Package kind assigns dense, stable integer identifiers to event kinds.
//
// Every concrete event type registers itself exactly once during process
// setup and receives the next free id, starting at zero. Once Freeze is
// called the id space is closed: the registered count sizes every
// processor's handler table, so a late registration would leave tables
// with unreachable rows. Registering after Freeze panics.
//
// Ids are never reused and remain stable for the process lifetime, which
// lets dispatch address handler rows by plain slice indexing instead of a
// runtime type lookup.
package kind
