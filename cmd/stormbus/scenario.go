package main

import (
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dshills/stormbus/internal/event"
	"github.com/dshills/stormbus/internal/event/events"
)

// producerSpec describes one stretch of a producer's workload.
type producerSpec struct {
	Event string // tick, message or metric
	Count int
	Body  string // message body, when Event == "message"
}

// scenario is the workload every producer goroutine runs.
type scenario struct {
	Producers []producerSpec
}

// defaultScenario submits a mixed stream of the three demo kinds.
func defaultScenario(eventsPer int) scenario {
	return scenario{Producers: []producerSpec{
		{Event: "tick", Count: eventsPer},
		{Event: "message", Count: eventsPer / 2, Body: "hello from stormbus"},
		{Event: "metric", Count: eventsPer / 4},
	}}
}

// loadScenario reads a JSON scenario file:
//
//	{"producers": [
//	  {"event": "tick", "count": 1000},
//	  {"event": "message", "count": 500, "body": "hi"}
//	]}
func loadScenario(path string) (scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, err
	}
	if !gjson.ValidBytes(data) {
		return scenario{}, fmt.Errorf("scenario %s: invalid JSON", path)
	}

	var s scenario
	for _, r := range gjson.GetBytes(data, "producers").Array() {
		spec := producerSpec{
			Event: r.Get("event").String(),
			Count: int(r.Get("count").Int()),
			Body:  r.Get("body").String(),
		}
		if spec.Count <= 0 {
			return scenario{}, fmt.Errorf("scenario %s: producer %q needs a positive count", path, spec.Event)
		}
		if _, err := spec.newEvent(0); err != nil {
			return scenario{}, fmt.Errorf("scenario %s: %w", path, err)
		}
		s.Producers = append(s.Producers, spec)
	}
	if len(s.Producers) == 0 {
		return scenario{}, fmt.Errorf("scenario %s: no producers", path)
	}
	return s, nil
}

// total returns the number of events one producer run submits.
func (s scenario) total() int {
	n := 0
	for _, p := range s.Producers {
		n += p.Count
	}
	return n
}

// newEvent builds the i-th event for this spec.
func (p producerSpec) newEvent(i int) (event.Event, error) {
	switch p.Event {
	case "tick":
		return &events.Tick{N: uint64(i), At: time.Now()}, nil
	case "message":
		return &events.Message{From: "demo", Body: p.Body}, nil
	case "metric":
		return &events.Metric{Name: "demo.sample", Value: float64(i)}, nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", p.Event)
	}
}
