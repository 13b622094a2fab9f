package main

import (
	"fmt"
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

func newBenchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure submit/drain/dispatch throughput",
		RunE:  runBench,
	}

	cmd.Flags().Int("events", 1_000_000, "Total events to submit")
	cmd.Flags().Int("producers", 4, "Concurrent producer goroutines")
	cmd.Flags().Int("processors", 1, "Independent consumer processors")

	return cmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync

	totalEvents, _ := cmd.Flags().GetInt("events")
	producers, _ := cmd.Flags().GetInt("producers")
	processors, _ := cmd.Flags().GetInt("processors")
	capacity, _ := cmd.Flags().GetInt("queue-capacity")

	reg := kind.NewRegistry()
	events.RegisterAll(reg)
	bus := event.New(reg, event.WithQueueCapacity(capacity))

	var delivered atomic.Uint64
	ids := make([]event.ProcessorID, processors)
	for i := range ids {
		ids[i] = bus.CreateProcessor()
	}
	// Count deliveries on the first processor only, mirroring a single
	// consumer measuring end-to-end latency of the shared backbone.
	listener := new(int)
	if err := event.Subscribe(bus, ids[0], listener, func(*events.Tick) {
		delivered.Add(1)
	}); err != nil {
		return err
	}

	perProducer := totalEvents / producers
	total := uint64(perProducer * producers)

	logger.Info("starting bench",
		zap.Uint64("events", total),
		zap.Int("producers", producers),
		zap.Int("processors", processors))

	start := time.Now()

	var prodGroup conc.WaitGroup
	for p := 0; p < producers; p++ {
		prodGroup.Go(func() {
			for i := 0; i < perProducer; i++ {
				ev := &events.Tick{N: uint64(i)}
				for {
					if _, err := bus.Submit(ids[0], ev); err == nil {
						break
					}
					runtime.Gosched()
				}
			}
		})
	}

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
					runtime.Gosched()
				}
			}
		})
	}

	var drained uint64
	for drained < total {
		n, err := bus.Drain()
		if err != nil {
			return err
		}
		drained += uint64(n)
		if n == 0 {
			runtime.Gosched()
		}
	}
	prodGroup.Wait()
	close(stop)
	workGroup.Wait()

	elapsed := time.Since(start)
	stats := bus.Stats()

	fmt.Printf("events:       %d\n", total)
	fmt.Printf("elapsed:      %s\n", elapsed)
	fmt.Printf("throughput:   %.0f events/sec\n", float64(total)/elapsed.Seconds())
	fmt.Printf("drain cycles: %d\n", stats.DrainCycles)
	fmt.Printf("delivered:    %d (processor %d)\n", delivered.Load(), ids[0])
	return nil
}
