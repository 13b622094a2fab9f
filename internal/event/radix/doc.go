// Package radix restores global sequence order over a drained batch.
//
// The sort runs in two stages. Entries are first partitioned into a small
// fixed number of buckets by the top bits of their key, measured against
// the bit length of the largest key in the batch, so bucket index order is
// already a coarse global order. Each non-trivial bucket is then sorted
// independently on its own goroutine with a least-significant-digit radix
// sort, and the bucket outputs are concatenated in bucket index order.
//
// Bucket count and digit width are internal tuning constants with no
// observable effect beyond the sorted result.
package radix
