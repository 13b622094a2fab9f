package main

import (
	"runtime"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/stormbus/internal/event"
	"github.com/dshills/stormbus/internal/event/events"
	"github.com/dshills/stormbus/internal/event/kind"
)

func newDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a multi-producer, multi-processor pub/sub scenario",
		RunE:  runDemo,
	}

	cmd.Flags().Int("producers", 4, "Concurrent producer goroutines")
	cmd.Flags().Int("processors", 2, "Independent consumer processors")
	cmd.Flags().Int("events", 1000, "Tick events per producer (default scenario)")
	cmd.Flags().String("scenario", "", "JSON scenario file overriding the default workload")

	return cmd
}

// demoCounter is one processor's listener; it counts deliveries per
// demo event kind.
type demoCounter struct {
	ticks    atomic.Uint64
	messages atomic.Uint64
	metrics  atomic.Uint64
}

func runDemo(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync

	producers, _ := cmd.Flags().GetInt("producers")
	processors, _ := cmd.Flags().GetInt("processors")
	eventsPer, _ := cmd.Flags().GetInt("events")
	scenarioPath, _ := cmd.Flags().GetString("scenario")
	capacity, _ := cmd.Flags().GetInt("queue-capacity")

	work := defaultScenario(eventsPer)
	if scenarioPath != "" {
		if work, err = loadScenario(scenarioPath); err != nil {
			return err
		}
	}

	reg := kind.NewRegistry()
	events.RegisterAll(reg)
	bus := event.New(reg,
		event.WithLogger(logger),
		event.WithQueueCapacity(capacity))

	ids := make([]event.ProcessorID, processors)
	counters := make([]*demoCounter, processors)
	for i := range ids {
		ids[i] = bus.CreateProcessor()
		c := &demoCounter{}
		counters[i] = c
		event.Subscribe(bus, ids[i], c, func(*events.Tick) { c.ticks.Add(1) })
		event.Subscribe(bus, ids[i], c, func(*events.Message) { c.messages.Add(1) })
		event.Subscribe(bus, ids[i], c, func(*events.Metric) { c.metrics.Add(1) })
	}

	total := uint64(producers * work.total())
	logger.Info("starting demo",
		zap.Int("producers", producers),
		zap.Int("processors", processors),
		zap.Uint64("events", total))

	start := time.Now()

	// Producers submit concurrently through processor 0's path; every
	// event reaches all processors regardless.
	var prodGroup conc.WaitGroup
	for p := 0; p < producers; p++ {
		prodGroup.Go(func() {
			for _, spec := range work.Producers {
				for i := 0; i < spec.Count; i++ {
					ev, _ := spec.newEvent(i)
					for {
						if _, err := bus.Submit(ids[0], ev); err == nil {
							break
						}
						// Queue full: yield and let the drainer catch up.
						runtime.Gosched()
					}
				}
			}
		})
	}

	// Dispatch workers, one per processor.
	stop := make(chan struct{})
	var workGroup conc.WaitGroup
	for _, id := range ids {
		workGroup.Go(func() {
			for {
				bus.Dispatch(id)
				select {
				case <-stop:
					bus.Dispatch(id)
					return
				default:
					time.Sleep(time.Millisecond)
				}
			}
		})
	}

	// Coordinator: drain until every submitted event has been moved.
	var drained uint64
	for drained < total {
		n, err := bus.Drain()
		if err != nil {
			return err
		}
		drained += uint64(n)
		if n == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	prodGroup.Wait()
	close(stop)
	workGroup.Wait()

	elapsed := time.Since(start)
	stats := bus.Stats()
	logger.Info("demo complete",
		zap.Duration("elapsed", elapsed),
		zap.Uint64("submitted", stats.EventsSubmitted),
		zap.Uint64("drain_cycles", stats.DrainCycles),
		zap.Uint64("dispatched", stats.EventsDispatched),
		zap.Uint64("handler_invocations", stats.HandlerInvocations))

	for i, c := range counters {
		logger.Info("processor deliveries",
			zap.Int("processor", int(ids[i])),
			zap.Uint64("ticks", c.ticks.Load()),
			zap.Uint64("messages", c.messages.Load()),
			zap.Uint64("metrics", c.metrics.Load()))
	}
	return nil
}
