// Package ingest provides the sequence-tagged ingestion queue feeding the
// resequencer.
//
// Producers call Submit from any number of goroutines: each submission
// claims the next global sequence number with an atomic fetch-and-increment
// and then enqueues a (item, sequence) entry into a lock-free
// multi-producer/multi-consumer ring. Enqueue never blocks; when the
// bounded ring is full the entry is rejected with ErrFull and the caller
// decides what to do with the item.
//
// Dequeue order is unspecified and routinely differs from sequence order
// under contention - restoring the global order is the resequencer's job,
// not the queue's. Drain performs a best-effort bulk dequeue bounded by
// the number of sequences allocated but not yet drained; it may return
// fewer entries than that when racing producers have claimed sequences
// whose entries are not yet visible. That is not an error, the next drain
// cycle picks them up.
//
// Drain must only be called from a single goroutine at a time; Submit is
// safe concurrently with Drain and with itself.
package ingest
