package events

import (
	"time"

	"github.com/dshills/stormbus/internal/event/kind"
)

// Kind ids assigned by RegisterAll. Kind methods must work on nil
// receivers, so they return these package variables without touching
// the event value.
var (
	tickKind    kind.ID
	messageKind kind.ID
	metricKind  kind.ID
)

// RegisterAll registers every event type in this package and captures
// the assigned ids. Call exactly once per registry, during setup.
func RegisterAll(reg *kind.Registry) {
	tickKind = reg.Register("events.tick")
	messageKind = reg.Register("events.message")
	metricKind = reg.Register("events.metric")
}

// Tick marks one pass of a periodic producer.
type Tick struct {
	N  uint64
	At time.Time
}

// Kind reports the dense id assigned to Tick.
func (*Tick) Kind() kind.ID { return tickKind }

// Message carries an opaque text payload between components.
type Message struct {
	From string
	Body string
}

// Kind reports the dense id assigned to Message.
func (*Message) Kind() kind.ID { return messageKind }

// Metric carries one named sample.
type Metric struct {
	Name  string
	Value float64
}

// Kind reports the dense id assigned to Metric.
func (*Metric) Kind() kind.ID { return metricKind }
