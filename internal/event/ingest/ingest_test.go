package ingest

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_SubmitAssignsIncreasingSequences(t *testing.T) {
	q := NewQueue[string](16)

	for i := 0; i < 10; i++ {
		seq, err := q.Submit("item")
		require.NoError(t, err)
		assert.Equal(t, uint64(i), seq)
	}
	assert.Equal(t, uint64(10), q.Allocated())
}

func TestQueue_DrainReturnsAllSubmitted(t *testing.T) {
	q := NewQueue[int](16)

	for i := 0; i < 5; i++ {
		_, err := q.Submit(i * 10)
		require.NoError(t, err)
	}

	got := q.Drain(nil)
	require.Len(t, got, 5)
	assert.Equal(t, uint64(0), q.Pending())

	seen := make(map[uint64]int, len(got))
	for _, e := range got {
		seen[e.Seq] = e.Item
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, i*10, seen[uint64(i)])
	}
}

func TestQueue_DrainEmpty(t *testing.T) {
	q := NewQueue[int](16)

	got := q.Drain(nil)
	assert.Empty(t, got)
	assert.Equal(t, uint64(0), q.Pending())
}

func TestQueue_DrainReusesBuffer(t *testing.T) {
	q := NewQueue[int](16)

	_, err := q.Submit(1)
	require.NoError(t, err)
	first := q.Drain(make([]Entry[int], 0, 8))
	require.Len(t, first, 1)

	_, err = q.Submit(2)
	require.NoError(t, err)
	second := q.Drain(first)
	require.Len(t, second, 1)
	assert.Equal(t, 2, second[0].Item)
}

func TestQueue_SubmitFull(t *testing.T) {
	q := NewQueue[int](2)

	_, err := q.Submit(1)
	require.NoError(t, err)
	_, err = q.Submit(2)
	require.NoError(t, err)

	seq, err := q.Submit(3)
	assert.ErrorIs(t, err, ErrFull)
	assert.Equal(t, uint64(2), seq) // sequence is consumed even on rejection

	// Rejected sequences must not inflate the pending count.
	assert.Equal(t, uint64(2), q.Pending())
	got := q.Drain(nil)
	assert.Len(t, got, 2)
}

func TestQueue_ConcurrentSubmitUniqueSequences(t *testing.T) {
	const (
		producers = 8
		perProd   = 500
	)
	q := NewQueue[int](producers * perProd)

	var wg sync.WaitGroup
	seqs := make([][]uint64, producers)
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				seq, err := q.Submit(p)
				if err != nil {
					t.Errorf("Submit failed: %v", err)
					return
				}
				seqs[p] = append(seqs[p], seq)
			}
		}(p)
	}
	wg.Wait()

	var all []uint64
	for p := 0; p < producers; p++ {
		// Per-producer sequences are strictly increasing.
		for i := 1; i < len(seqs[p]); i++ {
			if seqs[p][i] <= seqs[p][i-1] {
				t.Fatalf("producer %d sequences not increasing: %d then %d", p, seqs[p][i-1], seqs[p][i])
			}
		}
		all = append(all, seqs[p]...)
	}

	// Across all producers the sequences are exactly 0..N-1.
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	require.Len(t, all, producers*perProd)
	for i, s := range all {
		if s != uint64(i) {
			t.Fatalf("sequence gap at %d: got %d", i, s)
		}
	}

	got := q.Drain(make([]Entry[int], 0, len(all)))
	assert.Len(t, got, producers*perProd)
}

func TestQueue_DrainBestEffortUnderConcurrentSubmit(t *testing.T) {
	q := NewQueue[int](1 << 12)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			_, _ = q.Submit(i)
		}
	}()

	// Interleave drains with the producer; totals must reconcile at the end.
	var total int
	buf := make([]Entry[int], 0, 1<<12)
	for {
		buf = q.Drain(buf)
		total += len(buf)
		select {
		case <-done:
			buf = q.Drain(buf)
			total += len(buf)
			assert.Equal(t, 2000, total)
			assert.Equal(t, uint64(0), q.Pending())
			return
		default:
		}
	}
}
