// Package events defines the concrete event types used by the stormbus
// command and integration-style tests.
//
// RegisterAll must run during setup, before the bus is created, so each
// type's kind id is captured while the registry is still open.
package events
