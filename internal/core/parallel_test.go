package core

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParallelForCoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64, 1000} {
		hits := make([]int32, n)
		ParallelFor(n, 4, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			require.Equal(t, int32(1), h, "n=%d index %d", n, i)
		}
	}
}

func TestParallelForSmallRangeInline(t *testing.T) {
	calls := 0
	ParallelFor(3, 10, func(start, end int) {
		calls++
		require.Equal(t, 0, start)
		require.Equal(t, 3, end)
	})
	require.Equal(t, 1, calls)
}
