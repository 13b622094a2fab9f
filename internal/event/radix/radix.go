package radix

import (
	"math/bits"

	"github.com/sourcegraph/conc"
)

const (
	// bucketBits is the number of top key bits used to partition work
	// across goroutines.
	bucketBits = 4
	numBuckets = 1 << bucketBits

	// digitBits is the LSD pass digit width.
	digitBits = 8
	digitSize = 1 << digitBits
	digitMask = digitSize - 1
)

type keyed[T any] struct {
	item T
	key  uint64
}

// Sort returns the items ordered by ascending key. Keys are expected to
// be unique (sequence numbers); ties keep their relative input order.
// The input slice is not modified.
func Sort[T any](items []T, key func(T) uint64) []T {
	out := make([]T, 0, len(items))
	if len(items) < 2 {
		return append(out, items...)
	}

	pairs := make([]keyed[T], len(items))
	var max uint64
	for i, it := range items {
		k := key(it)
		pairs[i] = keyed[T]{item: it, key: k}
		if k > max {
			max = k
		}
	}

	if max == 0 {
		// Every key is zero; input order already stands.
		return append(out, items...)
	}

	// Partition by the top bucketBits bits of the batch's key range.
	shift := bits.Len64(max) - bucketBits
	if shift < 0 {
		shift = 0
	}
	var buckets [numBuckets][]keyed[T]
	for _, p := range pairs {
		buckets[p.key>>shift] = append(buckets[p.key>>shift], p)
	}

	var wg conc.WaitGroup
	for i := range buckets {
		if len(buckets[i]) > 1 {
			b := buckets[i]
			wg.Go(func() { lsdSort(b) })
		}
	}
	wg.Wait()

	for i := range buckets {
		for _, p := range buckets[i] {
			out = append(out, p.item)
		}
	}
	return out
}

// lsdSort sorts a bucket in place with a stable least-significant-digit
// counting sort, one pass per digit of the bucket's largest key.
func lsdSort[T any](b []keyed[T]) {
	var max uint64
	for _, p := range b {
		if p.key > max {
			max = p.key
		}
	}

	passes := (bits.Len64(max) + digitBits - 1) / digitBits
	tmp := make([]keyed[T], len(b))
	src, dst := b, tmp

	for pass := 0; pass < passes; pass++ {
		shift := uint(pass * digitBits)

		var count [digitSize]int
		for _, p := range src {
			count[(p.key>>shift)&digitMask]++
		}
		for d := 1; d < digitSize; d++ {
			count[d] += count[d-1]
		}
		for i := len(src) - 1; i >= 0; i-- {
			d := (src[i].key >> shift) & digitMask
			count[d]--
			dst[count[d]] = src[i]
		}

		src, dst = dst, src
	}

	if passes%2 == 1 {
		copy(b, src)
	}
}
