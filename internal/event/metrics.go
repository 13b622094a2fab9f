package event

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the bus's Prometheus collectors. A nil *metrics is a
// valid no-op receiver, used when no registerer is configured.
type metrics struct {
	eventsSubmitted  prometheus.Counter
	submitRejected   prometheus.Counter
	eventsDrained    prometheus.Counter
	drainCycles      prometheus.Counter
	batchesPublished prometheus.Counter
	eventsDispatched prometheus.Counter
	handlerCalls     prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	m := &metrics{
		eventsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormbus",
			Name:      "events_submitted_total",
			Help:      "Events accepted into the ingestion queue.",
		}),
		submitRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormbus",
			Name:      "submit_rejected_total",
			Help:      "Submissions rejected because the ingestion queue was full.",
		}),
		eventsDrained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormbus",
			Name:      "events_drained_total",
			Help:      "Events moved out of the ingestion queue by drain cycles.",
		}),
		drainCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormbus",
			Name:      "drain_cycles_total",
			Help:      "Drain cycles that performed work.",
		}),
		batchesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormbus",
			Name:      "batches_published_total",
			Help:      "Broadcast batches appended to processor FIFOs.",
		}),
		eventsDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormbus",
			Name:      "events_dispatched_total",
			Help:      "Event deliveries performed by Dispatch across processors.",
		}),
		handlerCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stormbus",
			Name:      "handler_invocations_total",
			Help:      "Handler callbacks invoked.",
		}),
	}

	reg.MustRegister(
		m.eventsSubmitted,
		m.submitRejected,
		m.eventsDrained,
		m.drainCycles,
		m.batchesPublished,
		m.eventsDispatched,
		m.handlerCalls,
	)
	return m
}

func (m *metrics) submitted() {
	if m == nil {
		return
	}
	m.eventsSubmitted.Inc()
}

func (m *metrics) submitRejectedInc() {
	if m == nil {
		return
	}
	m.submitRejected.Inc()
}

func (m *metrics) drained(events, processors int) {
	if m == nil {
		return
	}
	m.eventsDrained.Add(float64(events))
	m.drainCycles.Inc()
	m.batchesPublished.Add(float64(processors))
}

func (m *metrics) dispatched(events, invocations int) {
	if m == nil {
		return
	}
	m.eventsDispatched.Add(float64(events))
	m.handlerCalls.Add(float64(invocations))
}
